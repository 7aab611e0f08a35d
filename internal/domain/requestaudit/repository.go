package requestaudit

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, audit Audit) error
	MarkSuccessful(ctx context.Context, id string) error
	LatestRequestTime(ctx context.Context, apiID int64) (time.Time, bool, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	CountSinceByAPI(ctx context.Context, apiID int64, since time.Time) (int, error)
	HasSuccessfulDuplicate(ctx context.Context, requestTypeID int64, contentHash, excludeID string) (bool, error)
	List(ctx context.Context, filter Filter) ([]Audit, error)
}
