package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/sportsfeed/internal/domain/mapping"
)

type mappingKey struct {
	apiID      int64
	entity     mapping.Entity
	externalID mapping.ExternalID
}

// MappingRepository enforces one row per (api, entity, external id), like the
// unique indexes of the postgres schema.
type MappingRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[mappingKey]mapping.Mapping
}

func NewMappingRepository(items []mapping.Mapping) (*MappingRepository, error) {
	r := &MappingRepository{rows: make(map[mappingKey]mapping.Mapping, len(items))}
	for _, item := range items {
		if _, err := r.Create(context.Background(), item); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *MappingRepository) Find(_ context.Context, apiID int64, entity mapping.Entity, externalID mapping.ExternalID) ([]mapping.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.rows[mappingKey{apiID: apiID, entity: entity, externalID: externalID}]
	if !ok {
		return nil, nil
	}
	return []mapping.Mapping{item}, nil
}

func (r *MappingRepository) Create(_ context.Context, item mapping.Mapping) (mapping.Mapping, error) {
	if err := item.Validate(); err != nil {
		return mapping.Mapping{}, fmt.Errorf("invalid mapping: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := mappingKey{apiID: item.APIID, entity: item.Entity, externalID: item.ExternalID}
	if _, exists := r.rows[key]; exists {
		return mapping.Mapping{}, fmt.Errorf("%w: api=%d %s external=%s", mapping.ErrDuplicate, item.APIID, item.Entity, item.ExternalID)
	}
	r.nextID++
	item.ID = r.nextID
	r.rows[key] = item
	return item, nil
}

func (r *MappingRepository) Count(entity mapping.Entity) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key := range r.rows {
		if key.entity == entity {
			count++
		}
	}
	return count
}
