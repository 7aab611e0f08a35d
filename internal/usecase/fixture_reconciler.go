package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sportsfeed/internal/domain/fixture"
	"github.com/riskibarqy/sportsfeed/internal/domain/mapping"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// KickoffLayout is the only accepted kickoff format; the trailing Z pins it to UTC.
const KickoffLayout = "2006-01-02T15:04:05Z"

// ExternalMatch is one provider match as extracted from a payload.
// Nil fields were absent upstream.
type ExternalMatch struct {
	ExternalID *int64
	StatusCode string
	KickoffUTC string
	HomeTeamID *int64
	AwayTeamID *int64
	HomeScore  *int
	AwayScore  *int
}

// FixtureReconciler turns provider matches into fixture creates or updates.
type FixtureReconciler struct {
	mapper   *IdentifierMapper
	fixtures fixture.Repository
	logger   *logging.Logger
}

func NewFixtureReconciler(mapper *IdentifierMapper, fixtures fixture.Repository, logger *logging.Logger) *FixtureReconciler {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureReconciler{
		mapper:   mapper,
		fixtures: fixtures,
		logger:   logger,
	}
}

// Reconcile applies one match. A false result with a nil error is a per-match
// failure the caller should count but not abort on; errors are fatal.
func (r *FixtureReconciler) Reconcile(ctx context.Context, apiID int64, match ExternalMatch) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureReconciler.Reconcile", attribute.Int64("api.id", apiID))
	defer span.End()

	if match.ExternalID == nil {
		r.logger.WarnContext(ctx, "match skipped, external id is missing", "api_id", apiID)
		return false, nil
	}
	externalID := *match.ExternalID
	span.SetAttributes(attribute.Int64("match.external_id", externalID))
	logger := r.logger.With("api_id", apiID, "external_match_id", externalID)

	existing, found, err := r.existingFixture(ctx, apiID, externalID)
	if err != nil {
		recordSpanError(span, err)
		return false, err
	}
	if found && existing.Status.IsFinal() {
		logger.DebugContext(ctx, "match skipped, fixture is final", "fixture_id", existing.ID, "status", existing.Status)
		return true, nil
	}

	statusCode := strings.TrimSpace(match.StatusCode)
	kickoffRaw := strings.TrimSpace(match.KickoffUTC)
	if statusCode == "" || kickoffRaw == "" || match.HomeTeamID == nil || match.AwayTeamID == nil {
		logger.WarnContext(ctx, "match rejected, required field is missing",
			"has_status", statusCode != "",
			"has_kickoff", kickoffRaw != "",
			"has_home_team", match.HomeTeamID != nil,
			"has_away_team", match.AwayTeamID != nil,
		)
		return false, nil
	}

	homeTeamID, ok, err := r.mapper.Resolve(ctx, mapping.EntityTeam, mapping.Numeric(*match.HomeTeamID), apiID)
	if err != nil {
		recordSpanError(span, err)
		return false, err
	}
	if !ok {
		logger.WarnContext(ctx, "match rejected, home team is not mapped", "external_team_id", *match.HomeTeamID)
		return false, nil
	}
	awayTeamID, ok, err := r.mapper.Resolve(ctx, mapping.EntityTeam, mapping.Numeric(*match.AwayTeamID), apiID)
	if err != nil {
		recordSpanError(span, err)
		return false, err
	}
	if !ok {
		logger.WarnContext(ctx, "match rejected, away team is not mapped", "external_team_id", *match.AwayTeamID)
		return false, nil
	}

	kickoff, err := time.ParseInLocation(KickoffLayout, kickoffRaw, time.UTC)
	if err != nil {
		logger.WarnContext(ctx, "match rejected, kickoff is malformed", "kickoff", kickoffRaw, "error", err)
		return false, nil
	}

	statusID, ok, err := r.mapper.Resolve(ctx, mapping.EntityFixtureStatus, mapping.Text(statusCode), apiID)
	if err != nil {
		recordSpanError(span, err)
		return false, err
	}
	if !ok {
		logger.WarnContext(ctx, "match rejected, status is not mapped", "status_code", statusCode)
		return false, nil
	}
	status, ok := fixture.StatusFromID(statusID)
	if !ok {
		logger.WarnContext(ctx, "match rejected, status mapping points to unknown status", "status_code", statusCode, "status_id", statusID)
		return false, nil
	}

	update := fixture.Update{
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		HomeScore:  match.HomeScore,
		AwayScore:  match.AwayScore,
		KickoffAt:  kickoff,
		Status:     status,
	}

	if found {
		if err := existing.Apply(update); err != nil {
			if errors.Is(err, fixture.ErrStatusFrozen) {
				return true, nil
			}
			logger.WarnContext(ctx, "match rejected, status transition refused", "fixture_id", existing.ID, "error", err)
			return false, nil
		}
		if err := existing.Validate(); err != nil {
			logger.WarnContext(ctx, "match rejected, fixture is invalid", "fixture_id", existing.ID, "error", err)
			return false, nil
		}
		if err := r.fixtures.Update(ctx, existing); err != nil {
			recordSpanError(span, err)
			return false, fmt.Errorf("update fixture id=%d: %w", existing.ID, err)
		}
		logger.DebugContext(ctx, "fixture updated", "fixture_id", existing.ID, "status", existing.Status)
		return true, nil
	}

	item, err := fixture.New(update)
	if err != nil {
		logger.WarnContext(ctx, "match rejected, fixture is invalid", "error", err)
		return false, nil
	}
	created, err := r.fixtures.Create(ctx, item)
	if err != nil {
		recordSpanError(span, err)
		return false, fmt.Errorf("create fixture: %w", err)
	}
	// The mapping references the generated id, so it is written only after the fixture exists.
	if _, err := r.mapper.Bind(ctx, mapping.EntityFixture, created.ID, mapping.Numeric(externalID), apiID); err != nil {
		recordSpanError(span, err)
		return false, err
	}
	logger.DebugContext(ctx, "fixture created", "fixture_id", created.ID, "status", created.Status)
	return true, nil
}

func (r *FixtureReconciler) existingFixture(ctx context.Context, apiID, externalID int64) (fixture.Fixture, bool, error) {
	fixtureID, ok, err := r.mapper.Resolve(ctx, mapping.EntityFixture, mapping.Numeric(externalID), apiID)
	if err != nil {
		return fixture.Fixture{}, false, err
	}
	if !ok {
		return fixture.Fixture{}, false, nil
	}

	item, exists, err := r.fixtures.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("get fixture id=%d: %w", fixtureID, err)
	}
	if !exists {
		return fixture.Fixture{}, false, fmt.Errorf("%w: fixture mapping api=%d external=%d points to missing fixture id=%d",
			ErrMappingConsistency, apiID, externalID, fixtureID)
	}
	return item, true, nil
}
