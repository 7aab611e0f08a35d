package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
)

const (
	defaultAuditListLimit = 50
	maxAuditListLimit     = 500
)

// AuditService exposes the request audit trail for diagnosis.
type AuditService struct {
	audits requestaudit.Repository
}

func NewAuditService(audits requestaudit.Repository) *AuditService {
	return &AuditService{audits: audits}
}

// List returns audits newest first.
func (s *AuditService) List(ctx context.Context, filter requestaudit.Filter) ([]requestaudit.Audit, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuditService.List")
	defer span.End()

	if negativeID(filter.APIID) || negativeID(filter.RequestTypeID) {
		return nil, fmt.Errorf("%w: api id and request type id must be >= 0", ErrInvalidInput)
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultAuditListLimit
	case filter.Limit > maxAuditListLimit:
		filter.Limit = maxAuditListLimit
	}

	items, err := s.audits.List(ctx, filter)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list request audits: %w", err)
	}
	return items, nil
}

func negativeID(id *int64) bool {
	return id != nil && *id < 0
}
