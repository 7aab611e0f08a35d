package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/sportsfeed/internal/domain/externalapi"
	"github.com/riskibarqy/sportsfeed/internal/domain/mapping"
	"go.opentelemetry.io/otel/attribute"
)

// IdentifierMapper translates provider identifiers to internal entity ids.
type IdentifierMapper struct {
	apis     externalapi.Repository
	mappings mapping.Repository
}

func NewIdentifierMapper(apis externalapi.Repository, mappings mapping.Repository) *IdentifierMapper {
	return &IdentifierMapper{
		apis:     apis,
		mappings: mappings,
	}
}

// Resolve returns the internal id bound to externalID for entity under apiID.
// An unknown API or a missing mapping is reported as not found, never as an error.
func (m *IdentifierMapper) Resolve(ctx context.Context, entity mapping.Entity, externalID mapping.ExternalID, apiID int64) (int64, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentifierMapper.Resolve",
		attribute.String("mapping.entity", string(entity)),
		attribute.String("mapping.kind", externalID.Kind().String()),
		attribute.Int64("api.id", apiID),
	)
	defer span.End()

	if err := validateMappingKey(entity, externalID); err != nil {
		recordSpanError(span, err)
		return 0, false, err
	}

	_, exists, err := m.apis.GetAPIByID(ctx, apiID)
	if err != nil {
		recordSpanError(span, err)
		return 0, false, fmt.Errorf("get api id=%d: %w", apiID, err)
	}
	if !exists {
		return 0, false, nil
	}

	rows, err := m.mappings.Find(ctx, apiID, entity, externalID)
	if err != nil {
		recordSpanError(span, err)
		return 0, false, fmt.Errorf("find %s mapping api=%d external=%s: %w", entity, apiID, externalID, err)
	}

	switch len(rows) {
	case 0:
		return 0, false, nil
	case 1:
		return rows[0].InternalID, true, nil
	default:
		err := fmt.Errorf("%w: %d %s mappings for api=%d external=%s", ErrMappingConsistency, len(rows), entity, apiID, externalID)
		recordSpanError(span, err)
		return 0, false, err
	}
}

// Bind records that externalID under apiID refers to internalID.
func (m *IdentifierMapper) Bind(ctx context.Context, entity mapping.Entity, internalID int64, externalID mapping.ExternalID, apiID int64) (mapping.Mapping, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentifierMapper.Bind",
		attribute.String("mapping.entity", string(entity)),
		attribute.Int64("mapping.internal_id", internalID),
		attribute.Int64("api.id", apiID),
	)
	defer span.End()

	if err := validateMappingKey(entity, externalID); err != nil {
		recordSpanError(span, err)
		return mapping.Mapping{}, err
	}

	created, err := m.mappings.Create(ctx, mapping.Mapping{
		APIID:      apiID,
		Entity:     entity,
		InternalID: internalID,
		ExternalID: externalID,
	})
	if err != nil {
		recordSpanError(span, err)
		if errors.Is(err, mapping.ErrDuplicate) {
			return mapping.Mapping{}, fmt.Errorf("%w: %s external=%s api=%d: %w", ErrMappingConsistency, entity, externalID, apiID, err)
		}
		return mapping.Mapping{}, fmt.Errorf("create %s mapping: %w", entity, err)
	}

	return created, nil
}

func validateMappingKey(entity mapping.Entity, externalID mapping.ExternalID) error {
	switch externalID.Kind() {
	case mapping.IDKindNumeric, mapping.IDKindText:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidIdentifierKind, externalID.Kind())
	}
	if !entity.Valid() {
		return fmt.Errorf("%w: unknown entity %q", ErrInvalidIdentifierKind, entity)
	}
	return nil
}
