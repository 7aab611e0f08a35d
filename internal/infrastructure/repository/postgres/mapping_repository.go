package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sportsfeed/internal/domain/mapping"
	qb "github.com/riskibarqy/sportsfeed/internal/platform/querybuilder"
)

type MappingRepository struct {
	db *sqlx.DB
}

func NewMappingRepository(db *sqlx.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

func (r *MappingRepository) Find(ctx context.Context, apiID int64, entity mapping.Entity, externalID mapping.ExternalID) ([]mapping.Mapping, error) {
	externalCondition, err := externalIDCondition(externalID)
	if err != nil {
		return nil, err
	}

	query, args, err := qb.Select("id", "api_id", "entity", "internal_id", "external_numeric", "external_text").
		From("entity_mappings").
		Where(
			qb.Eq("api_id", apiID),
			qb.Eq("entity", string(entity)),
			externalCondition,
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select entity mappings query: %w", err)
	}

	var rows []entityMappingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select entity mappings: %w", err)
	}

	out := make([]mapping.Mapping, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappingFromRow(row))
	}
	return out, nil
}

func (r *MappingRepository) Create(ctx context.Context, item mapping.Mapping) (mapping.Mapping, error) {
	if err := item.Validate(); err != nil {
		return mapping.Mapping{}, fmt.Errorf("validate entity mapping: %w", err)
	}

	insertModel := entityMappingTableModel{
		APIID:      item.APIID,
		Entity:     string(item.Entity),
		InternalID: item.InternalID,
	}
	if v, ok := item.ExternalID.Int64(); ok {
		insertModel.ExternalNumeric = sql.NullInt64{Int64: v, Valid: true}
	}
	if v, ok := item.ExternalID.Text(); ok {
		insertModel.ExternalText = sql.NullString{String: v, Valid: true}
	}

	query, args, err := qb.InsertModel("entity_mappings", insertModel, "RETURNING id")
	if err != nil {
		return mapping.Mapping{}, fmt.Errorf("build insert entity mapping query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return mapping.Mapping{}, fmt.Errorf("%w: %s %s for api %d", mapping.ErrDuplicate, item.Entity, item.ExternalID, item.APIID)
		}
		return mapping.Mapping{}, fmt.Errorf("insert entity mapping: %w", err)
	}

	item.ID = id
	return item, nil
}

func externalIDCondition(externalID mapping.ExternalID) (qb.Condition, error) {
	if v, ok := externalID.Int64(); ok {
		return qb.Eq("external_numeric", v), nil
	}
	if v, ok := externalID.Text(); ok {
		return qb.Eq("external_text", v), nil
	}
	return nil, fmt.Errorf("unsupported external id kind %s", externalID.Kind())
}

func mappingFromRow(row entityMappingTableModel) mapping.Mapping {
	out := mapping.Mapping{
		ID:         row.ID,
		APIID:      row.APIID,
		Entity:     mapping.Entity(row.Entity),
		InternalID: row.InternalID,
	}
	switch {
	case row.ExternalNumeric.Valid:
		out.ExternalID = mapping.Numeric(row.ExternalNumeric.Int64)
	case row.ExternalText.Valid:
		out.ExternalID = mapping.Text(row.ExternalText.String)
	}
	return out
}
