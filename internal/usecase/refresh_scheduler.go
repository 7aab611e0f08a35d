package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
)

type refresher interface {
	Refresh(ctx context.Context) (bool, error)
}

// RefreshScheduler triggers refreshes on a fixed interval. A tick that arrives
// while the previous refresh is still running is dropped.
type RefreshScheduler struct {
	refresher refresher
	interval  time.Duration
	logger    *logging.Logger

	pool *ants.Pool
	wg   sync.WaitGroup
}

func NewRefreshScheduler(refresher refresher, interval time.Duration, logger *logging.Logger) (*RefreshScheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: refresh interval must be > 0", ErrConfiguration)
	}
	if logger == nil {
		logger = logging.Default()
	}

	workers, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create refresh worker pool: %w", err)
	}

	return &RefreshScheduler{
		refresher: refresher,
		interval:  interval,
		logger:    logger,
		pool:      workers,
	}, nil
}

// Run blocks until ctx is done, then waits for an in-flight refresh to finish.
func (s *RefreshScheduler) Run(ctx context.Context) {
	defer s.pool.Release()
	defer s.wg.Wait()

	s.logger.InfoContext(ctx, "refresh scheduler started", "interval", s.interval.String())
	s.trigger(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "refresh scheduler stopped")
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

// trigger reports whether a refresh was started.
func (s *RefreshScheduler) trigger(ctx context.Context) bool {
	s.wg.Add(1)
	err := s.pool.Submit(func() {
		defer s.wg.Done()

		start := time.Now()
		ok, err := s.refresher.Refresh(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "scheduled refresh failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
			return
		}
		s.logger.InfoContext(ctx, "scheduled refresh finished", "ok", ok, "duration_ms", time.Since(start).Milliseconds())
	})
	if err != nil {
		s.wg.Done()
		if errors.Is(err, ants.ErrPoolOverload) {
			s.logger.WarnContext(ctx, "scheduled refresh skipped, previous run still in progress")
			return false
		}
		s.logger.ErrorContext(ctx, "submit scheduled refresh failed", "error", err)
		return false
	}
	return true
}
