package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	store.Set(ctx, "mapping:1:team:57", int64(0))
	store.Set(ctx, "team:active", "x")

	store.Delete(ctx, "mapping:1:team:57")
	if _, ok := store.Get(ctx, "mapping:1:team:57"); ok {
		t.Fatalf("expected deleted key to be gone")
	}
	if _, ok := store.Get(ctx, "team:active"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(ctx, "team:active"); ok {
		t.Fatalf("expected key to expire after ttl")
	}

	stats := store.Stats()
	if stats.Hits != 1 || stats.Misses != 2 || stats.Size != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestLoad_TypedValues(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()

	got, err := Load(ctx, store, "team:id:3", func(context.Context) (int64, error) { return 3, nil })
	if err != nil || got != 3 {
		t.Fatalf("unexpected load: got=%d err=%v", got, err)
	}

	if _, err := Load(ctx, store, "team:id:3", func(context.Context) (string, error) { return "x", nil }); err == nil {
		t.Fatalf("expected type mismatch error")
	}

	loadErr := errors.New("db down")
	if _, err := Load(ctx, store, "team:active", func(context.Context) ([]int64, error) { return nil, loadErr }); !errors.Is(err, loadErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
