package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/sportsfeed/internal/domain/externalapi"
)

type ExternalAPIRepository struct {
	mu           sync.RWMutex
	apis         map[int64]externalapi.API
	requestTypes map[int64]externalapi.RequestType
}

func NewExternalAPIRepository(apis []externalapi.API, requestTypes []externalapi.RequestType) *ExternalAPIRepository {
	r := &ExternalAPIRepository{
		apis:         make(map[int64]externalapi.API, len(apis)),
		requestTypes: make(map[int64]externalapi.RequestType, len(requestTypes)),
	}
	for _, item := range apis {
		r.apis[item.ID] = item
	}
	for _, item := range requestTypes {
		r.requestTypes[item.ID] = item
	}
	return r
}

func (r *ExternalAPIRepository) GetAPIByID(_ context.Context, id int64) (externalapi.API, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.apis[id]
	return item, ok, nil
}

func (r *ExternalAPIRepository) GetRequestTypeByID(_ context.Context, id int64) (externalapi.RequestType, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.requestTypes[id]
	return item, ok, nil
}

// UpsertAPI replaces the descriptor with the same id.
func (r *ExternalAPIRepository) UpsertAPI(item externalapi.API) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.apis[item.ID] = item
}
