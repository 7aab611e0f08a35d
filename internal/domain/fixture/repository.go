package fixture

import "context"

// Repository exposes fixture persistence. Create returns the stored fixture with its generated id.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Fixture, bool, error)
	Create(ctx context.Context, item Fixture) (Fixture, error)
	Update(ctx context.Context, item Fixture) error
	ListByTeams(ctx context.Context, teamIDs []int64) ([]Fixture, error)
}
