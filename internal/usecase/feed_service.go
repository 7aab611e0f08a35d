package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/sportsfeed/internal/domain/fixture"
	"github.com/riskibarqy/sportsfeed/internal/domain/team"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

// Fetcher is one refreshable data source, usually a *FetchClient.
type Fetcher interface {
	Request(ctx context.Context) (bool, error)
}

// FeedService serves personalized fixture feeds and keeps them fresh.
type FeedService struct {
	fetchers    []Fetcher
	fixtures    fixture.Repository
	teams       team.Repository
	logger      *logging.Logger
	concurrency int
}

func NewFeedService(
	fetchers []Fetcher,
	fixtures fixture.Repository,
	teams team.Repository,
	concurrency int,
	logger *logging.Logger,
) *FeedService {
	if logger == nil {
		logger = logging.Default()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &FeedService{
		fetchers:    fetchers,
		fixtures:    fixtures,
		teams:       teams,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Refresh runs every fetcher and reports whether all of them succeeded.
// One failing fetcher does not stop the others.
func (s *FeedService) Refresh(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Refresh", attribute.Int("fetcher.count", len(s.fetchers)))
	defer span.End()

	if len(s.fetchers) == 0 {
		return true, nil
	}

	p := pool.NewWithResults[bool]().
		WithContext(ctx).
		WithMaxGoroutines(s.concurrency)
	for _, fetcher := range s.fetchers {
		fetcher := fetcher
		p.Go(func(ctx context.Context) (bool, error) {
			return fetcher.Request(ctx)
		})
	}

	results, err := p.Wait()
	if err != nil {
		recordSpanError(span, err)
		return false, fmt.Errorf("refresh fetchers: %w", err)
	}

	ok := len(results) == len(s.fetchers)
	for _, result := range results {
		ok = ok && result
	}
	span.SetAttributes(attribute.Bool("refresh.ok", ok))
	return ok, nil
}

// FixturesForTeams returns each fixture involving any of teamIDs once, ordered by kickoff.
func (s *FeedService) FixturesForTeams(ctx context.Context, teamIDs []int64) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.FixturesForTeams", attribute.Int("team.count", len(teamIDs)))
	defer span.End()

	ids := uniqueTeamIDs(teamIDs)
	if len(ids) == 0 {
		return []fixture.Fixture{}, nil
	}

	items, err := s.fixtures.ListByTeams(ctx, ids)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list fixtures by teams: %w", err)
	}

	seen := make(map[int64]struct{}, len(items))
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// Feed refreshes when asked and then reads fixtures. A failed refresh is logged
// and the stored fixtures are served as they are.
func (s *FeedService) Feed(ctx context.Context, teamIDs []int64, refresh bool) ([]fixture.Fixture, error) {
	if refresh {
		ok, err := s.Refresh(ctx)
		switch {
		case err != nil:
			s.logger.ErrorContext(ctx, "feed refresh failed", "error", err)
		case !ok:
			s.logger.WarnContext(ctx, "feed refresh incomplete, serving stored fixtures")
		}
	}

	return s.FixturesForTeams(ctx, teamIDs)
}

func (s *FeedService) ListActiveTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.ListActiveTeams")
	defer span.End()

	items, err := s.teams.ListActive(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list active teams: %w", err)
	}
	return items, nil
}

// ValidateTeams checks that every id refers to an active team.
func (s *FeedService) ValidateTeams(ctx context.Context, teamIDs []int64) error {
	var errs []error
	for _, teamID := range uniqueTeamIDs(teamIDs) {
		item, exists, err := s.teams.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team id=%d: %w", teamID, err)
		}
		switch {
		case !exists:
			errs = append(errs, fmt.Errorf("team id=%d", teamID))
		case !item.Active:
			errs = append(errs, fmt.Errorf("team id=%d is inactive", teamID))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: unknown or inactive teams: %w", ErrNotFound, errors.Join(errs...))
	}
	return nil
}

func uniqueTeamIDs(teamIDs []int64) []int64 {
	seen := make(map[int64]struct{}, len(teamIDs))
	out := make([]int64, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if _, ok := seen[teamID]; ok {
			continue
		}
		seen[teamID] = struct{}{}
		out = append(out, teamID)
	}
	return out
}
