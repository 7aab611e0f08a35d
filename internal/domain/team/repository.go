package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListActive(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
}
