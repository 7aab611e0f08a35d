package mapping

import "context"

// Repository stores entity mappings. Find returns every matching row so that
// callers can detect uniqueness violations instead of silently picking one.
type Repository interface {
	Find(ctx context.Context, apiID int64, entity Entity, externalID ExternalID) ([]Mapping, error)
	Create(ctx context.Context, item Mapping) (Mapping, error)
}
