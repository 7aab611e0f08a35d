package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/sportsfeed/internal/domain/mapping"
	"github.com/riskibarqy/sportsfeed/internal/domain/team"
	basecache "github.com/riskibarqy/sportsfeed/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, "team:active", r.next.ListActive)
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	key := "team:id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedTeamByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return cachedTeamByID{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

// MappingRepository caches lookups of reference entities (teams, statuses).
// Fixture mappings are written during ingestion and always read through.
type MappingRepository struct {
	next  mapping.Repository
	cache *basecache.Store
}

func NewMappingRepository(next mapping.Repository, cache *basecache.Store) *MappingRepository {
	return &MappingRepository{next: next, cache: cache}
}

func (r *MappingRepository) Find(ctx context.Context, apiID int64, entity mapping.Entity, externalID mapping.ExternalID) ([]mapping.Mapping, error) {
	if entity == mapping.EntityFixture {
		return r.next.Find(ctx, apiID, entity, externalID)
	}

	items, err := basecache.Load(ctx, r.cache, mappingKey(apiID, entity, externalID), func(ctx context.Context) ([]mapping.Mapping, error) {
		return r.next.Find(ctx, apiID, entity, externalID)
	})
	if err != nil {
		return nil, err
	}
	return append([]mapping.Mapping(nil), items...), nil
}

func (r *MappingRepository) Create(ctx context.Context, item mapping.Mapping) (mapping.Mapping, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return mapping.Mapping{}, err
	}
	r.cache.Delete(ctx, mappingKey(item.APIID, item.Entity, item.ExternalID))
	return created, nil
}

func mappingKey(apiID int64, entity mapping.Entity, externalID mapping.ExternalID) string {
	return "mapping:" + strconv.FormatInt(apiID, 10) + ":" + string(entity) + ":" + externalID.Kind().String() + ":" + externalID.String()
}
