package externalapi

import "context"

// Repository reads API descriptors and their request types.
type Repository interface {
	GetAPIByID(ctx context.Context, id int64) (API, bool, error)
	GetRequestTypeByID(ctx context.Context, id int64) (RequestType, bool, error)
}

// Locker serializes fetch cycles per API so the cooldown check,
// audit write and duplicate check run as one unit.
type Locker interface {
	WithLock(ctx context.Context, apiID int64, fn func(ctx context.Context) error) error
}
