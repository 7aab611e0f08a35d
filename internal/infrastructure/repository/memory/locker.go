package memory

import (
	"context"
	"sync"
)

// Locker is an in-process per-API mutex that gives up when ctx is done.
type Locker struct {
	mu    sync.Mutex
	slots map[int64]chan struct{}
}

func NewLocker() *Locker {
	return &Locker{slots: make(map[int64]chan struct{})}
}

func (l *Locker) WithLock(ctx context.Context, apiID int64, fn func(ctx context.Context) error) error {
	slot := l.slot(apiID)

	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-slot }()

	return fn(ctx)
}

func (l *Locker) slot(apiID int64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[apiID]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[apiID] = slot
	}
	return slot
}
