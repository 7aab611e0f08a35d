package footballdata

import (
	"context"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sportsfeed/internal/domain/externalapi"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"github.com/riskibarqy/sportsfeed/internal/usecase"
)

const (
	// DefaultCompetitionID is the Premier League on football-data.org.
	DefaultCompetitionID int64 = 2021

	authHeader = "X-Auth-Token"
)

var (
	ErrCompetitionMismatch = crerr.New("football-data competition mismatch")
	ErrMatchesMissing      = crerr.New("football-data matches missing")
)

type matchReconciler interface {
	Reconcile(ctx context.Context, apiID int64, match usecase.ExternalMatch) (bool, error)
}

type ProviderConfig struct {
	APIKey        string
	CompetitionID int64
	Logger        *logging.Logger
}

// Provider implements the football-data.org hooks of the fetch lifecycle.
type Provider struct {
	apiKey        string
	competitionID int64
	reconciler    matchReconciler
	logger        *logging.Logger
}

func NewProvider(cfg ProviderConfig, reconciler matchReconciler) *Provider {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	competitionID := cfg.CompetitionID
	if competitionID <= 0 {
		competitionID = DefaultCompetitionID
	}

	return &Provider{
		apiKey:        strings.TrimSpace(cfg.APIKey),
		competitionID: competitionID,
		reconciler:    reconciler,
		logger:        logger,
	}
}

// URLArgs are the positional arguments of the competition matches template.
func (p *Provider) URLArgs() []string {
	return []string{strconv.FormatInt(p.competitionID, 10)}
}

func (p *Provider) Headers() map[string]string {
	headers := map[string]string{"Accept": "application/json"}
	if p.apiKey != "" {
		headers[authHeader] = p.apiKey
	}
	return headers
}

func (p *Provider) Validate(payload map[string]any) error {
	competition := getMap(payload, "competition")
	if competition == nil {
		return crerr.Wrap(ErrCompetitionMismatch, "competition object is missing")
	}
	id, ok := getInt64(competition, "id")
	if !ok {
		return crerr.Wrap(ErrCompetitionMismatch, "competition id is missing")
	}
	if id != p.competitionID {
		return crerr.Wrapf(ErrCompetitionMismatch, "got competition %d, want %d", id, p.competitionID)
	}

	raw, exists := payload["matches"]
	if !exists {
		return ErrMatchesMissing
	}
	if _, ok := raw.([]any); !ok {
		return crerr.Wrapf(ErrMatchesMissing, "matches has type %T", raw)
	}
	return nil
}

// HandleContent reconciles every match, even after one fails, and ANDs the results.
func (p *Provider) HandleContent(ctx context.Context, api externalapi.API, payload map[string]any) (bool, error) {
	items, _ := payload["matches"].([]any)

	success := true
	rejected := 0
	for idx, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			p.logger.WarnContext(ctx, "football-data match is not an object", "index", idx)
			success = false
			rejected++
			continue
		}

		ok, err := p.reconciler.Reconcile(ctx, api.ID, ExtractMatch(item))
		if err != nil {
			return false, err
		}
		if !ok {
			success = false
			rejected++
		}
	}

	p.logger.InfoContext(ctx, "football-data matches handled",
		"api_id", api.ID,
		"matches", len(items),
		"rejected", rejected,
	)
	return success, nil
}
