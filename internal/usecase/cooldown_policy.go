package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/sportsfeed/internal/domain/externalapi"
	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
	"go.opentelemetry.io/otel/attribute"
)

// PerMinuteScope selects which audits count toward a per-minute budget.
type PerMinuteScope string

const (
	// PerMinuteScopeGlobal counts every audit regardless of API.
	PerMinuteScopeGlobal PerMinuteScope = "global"
	PerMinuteScopeAPI    PerMinuteScope = "api"
)

const perMinuteWindow = time.Minute

// CooldownPolicy derives rate-limit state from the persisted audit history only.
type CooldownPolicy struct {
	audits requestaudit.Repository
	scope  PerMinuteScope
	now    func() time.Time
}

func NewCooldownPolicy(audits requestaudit.Repository, scope PerMinuteScope) *CooldownPolicy {
	if scope == "" {
		scope = PerMinuteScopeGlobal
	}
	return &CooldownPolicy{
		audits: audits,
		scope:  scope,
		now:    time.Now,
	}
}

// IsInCooldown reports whether a new call to api must be skipped right now.
func (p *CooldownPolicy) IsInCooldown(ctx context.Context, api externalapi.API) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CooldownPolicy.IsInCooldown",
		attribute.Int64("api.id", api.ID),
		attribute.String("api.rate_limit", string(api.RateLimit)),
	)
	defer span.End()

	now := p.now().UTC()
	switch api.RateLimit {
	case externalapi.RateLimitStaggered:
		last, ok, err := p.audits.LatestRequestTime(ctx, api.ID)
		if err != nil {
			recordSpanError(span, err)
			return false, fmt.Errorf("latest request time api=%d: %w", api.ID, err)
		}
		if !ok {
			return false, nil
		}
		interval := time.Duration(api.RequestIntervalMS) * time.Millisecond
		return now.Sub(last) < interval, nil

	case externalapi.RateLimitPerMinute:
		since := now.Add(-perMinuteWindow)
		var (
			count int
			err   error
		)
		switch p.scope {
		case PerMinuteScopeAPI:
			count, err = p.audits.CountSinceByAPI(ctx, api.ID, since)
		case PerMinuteScopeGlobal:
			count, err = p.audits.CountSince(ctx, since)
		default:
			return false, fmt.Errorf("%w: unknown per-minute scope %q", ErrConfiguration, p.scope)
		}
		if err != nil {
			recordSpanError(span, err)
			return false, fmt.Errorf("count recent requests api=%d: %w", api.ID, err)
		}
		return count >= api.RequestsPerMinute, nil

	default:
		err := fmt.Errorf("%w: api=%d has unknown rate limit kind %q", ErrConfiguration, api.ID, api.RateLimit)
		recordSpanError(span, err)
		return false, err
	}
}
