package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/sportsfeed/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	nextID   int64
	fixtures map[int64]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	r := &FixtureRepository{fixtures: make(map[int64]fixture.Fixture, len(fixtures))}
	for _, item := range fixtures {
		r.fixtures[item.ID] = cloneFixture(item)
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
	}
	return r
}

func (r *FixtureRepository) GetByID(_ context.Context, id int64) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.fixtures[id]
	if !ok {
		return fixture.Fixture{}, false, nil
	}
	return cloneFixture(item), true, nil
}

func (r *FixtureRepository) Create(_ context.Context, item fixture.Fixture) (fixture.Fixture, error) {
	if err := item.Validate(); err != nil {
		return fixture.Fixture{}, fmt.Errorf("invalid fixture: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	item.KickoffAt = item.KickoffAt.UTC()
	r.fixtures[item.ID] = cloneFixture(item)
	return cloneFixture(item), nil
}

func (r *FixtureRepository) Update(_ context.Context, item fixture.Fixture) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid fixture: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fixtures[item.ID]; !ok {
		return fmt.Errorf("fixture id=%d not found", item.ID)
	}
	item.KickoffAt = item.KickoffAt.UTC()
	r.fixtures[item.ID] = cloneFixture(item)
	return nil
}

func (r *FixtureRepository) ListByTeams(_ context.Context, teamIDs []int64) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(teamIDs))
	for _, teamID := range teamIDs {
		wanted[teamID] = struct{}{}
	}

	out := make([]fixture.Fixture, 0)
	for _, item := range r.fixtures {
		_, home := wanted[item.HomeTeamID]
		_, away := wanted[item.AwayTeamID]
		if home || away {
			out = append(out, cloneFixture(item))
		}
	}
	return out, nil
}

// All returns every stored fixture in no particular order.
func (r *FixtureRepository) All() []fixture.Fixture {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, item := range r.fixtures {
		out = append(out, cloneFixture(item))
	}
	return out
}

func cloneFixture(item fixture.Fixture) fixture.Fixture {
	if item.HomeScore != nil {
		v := *item.HomeScore
		item.HomeScore = &v
	}
	if item.AwayScore != nil {
		v := *item.AwayScore
		item.AwayScore = &v
	}
	return item
}
