package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
)

type RequestAuditRepository struct {
	mu     sync.RWMutex
	audits []requestaudit.Audit
	byID   map[string]int
}

func NewRequestAuditRepository() *RequestAuditRepository {
	return &RequestAuditRepository{byID: make(map[string]int)}
}

func (r *RequestAuditRepository) Create(_ context.Context, audit requestaudit.Audit) error {
	if err := audit.Validate(); err != nil {
		return fmt.Errorf("invalid request audit: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[audit.ID]; exists {
		return fmt.Errorf("request audit id=%s already exists", audit.ID)
	}
	audit.RequestedAt = audit.RequestedAt.UTC()
	r.byID[audit.ID] = len(r.audits)
	r.audits = append(r.audits, audit)
	return nil
}

func (r *RequestAuditRepository) MarkSuccessful(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, exists := r.byID[id]
	if !exists {
		return fmt.Errorf("request audit id=%s not found", id)
	}
	r.audits[idx].Successful = true
	return nil
}

func (r *RequestAuditRepository) LatestRequestTime(_ context.Context, apiID int64) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		latest time.Time
		found  bool
	)
	for _, item := range r.audits {
		if item.APIID != apiID {
			continue
		}
		if !found || item.RequestedAt.After(latest) {
			latest = item.RequestedAt
			found = true
		}
	}
	return latest, found, nil
}

func (r *RequestAuditRepository) CountSince(_ context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.audits {
		if !item.RequestedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *RequestAuditRepository) CountSinceByAPI(_ context.Context, apiID int64, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.audits {
		if item.APIID == apiID && !item.RequestedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *RequestAuditRepository) HasSuccessfulDuplicate(_ context.Context, requestTypeID int64, contentHash, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.audits {
		if item.ID == excludeID || !item.Successful {
			continue
		}
		if item.RequestTypeID == requestTypeID && item.ContentHash == contentHash {
			return true, nil
		}
	}
	return false, nil
}

func (r *RequestAuditRepository) List(_ context.Context, filter requestaudit.Filter) ([]requestaudit.Audit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]requestaudit.Audit, 0, len(r.audits))
	for _, item := range r.audits {
		if filter.APIID != nil && item.APIID != *filter.APIID {
			continue
		}
		if filter.RequestTypeID != nil && item.RequestTypeID != *filter.RequestTypeID {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RequestedAt.After(out[j].RequestedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
