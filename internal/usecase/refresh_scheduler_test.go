package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
)

type blockingRefresher struct {
	calls   atomic.Int32
	release chan struct{}
}

func (r *blockingRefresher) Refresh(ctx context.Context) (bool, error) {
	r.calls.Add(1)
	select {
	case <-r.release:
	case <-ctx.Done():
	}
	return true, nil
}

func TestRefreshScheduler_RejectsNonPositiveInterval(t *testing.T) {
	t.Parallel()

	_, err := NewRefreshScheduler(&blockingRefresher{}, 0, logging.NewNop())
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestRefreshScheduler_SkipsOverlappingTicks(t *testing.T) {
	t.Parallel()

	refresher := &blockingRefresher{release: make(chan struct{})}
	scheduler, err := NewRefreshScheduler(refresher, time.Hour, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	defer scheduler.pool.Release()

	ctx := context.Background()
	if !scheduler.trigger(ctx) {
		t.Fatalf("expected first trigger to start a refresh")
	}
	deadline := time.Now().Add(2 * time.Second)
	for refresher.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if scheduler.trigger(ctx) {
		t.Fatalf("expected overlapping trigger to be skipped")
	}

	close(refresher.release)
	scheduler.wg.Wait()
	if got := refresher.calls.Load(); got != 1 {
		t.Fatalf("unexpected refresh calls: got=%d want=1", got)
	}
}

func TestRefreshScheduler_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	refresher := &blockingRefresher{release: make(chan struct{})}
	close(refresher.release)
	scheduler, err := NewRefreshScheduler(refresher, 10*time.Millisecond, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("scheduler did not stop after cancel")
	}
	if refresher.calls.Load() == 0 {
		t.Fatalf("expected at least one refresh")
	}
}
