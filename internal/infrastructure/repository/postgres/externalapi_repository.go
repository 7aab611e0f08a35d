package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sportsfeed/internal/domain/externalapi"
	qb "github.com/riskibarqy/sportsfeed/internal/platform/querybuilder"
)

type ExternalAPIRepository struct {
	db *sqlx.DB
}

func NewExternalAPIRepository(db *sqlx.DB) *ExternalAPIRepository {
	return &ExternalAPIRepository{db: db}
}

func (r *ExternalAPIRepository) GetAPIByID(ctx context.Context, id int64) (externalapi.API, bool, error) {
	query, args, err := qb.Select("id", "name", "rate_limit_kind", "requests_per_minute", "request_interval_ms").
		From("external_apis").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return externalapi.API{}, false, fmt.Errorf("build select api by id query: %w", err)
	}

	var row externalAPITableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return externalapi.API{}, false, nil
		}
		return externalapi.API{}, false, fmt.Errorf("select api by id: %w", err)
	}

	return externalapi.API{
		ID:                row.ID,
		Name:              row.Name,
		RateLimit:         externalapi.RateLimitKind(row.RateLimitKind),
		RequestsPerMinute: row.RequestsPerMinute,
		RequestIntervalMS: row.RequestIntervalMS,
	}, true, nil
}

func (r *ExternalAPIRepository) GetRequestTypeByID(ctx context.Context, id int64) (externalapi.RequestType, bool, error) {
	query, args, err := qb.Select("id", "api_id", "url_template", "description", "version_iter").
		From("request_types").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return externalapi.RequestType{}, false, fmt.Errorf("build select request type by id query: %w", err)
	}

	var row requestTypeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return externalapi.RequestType{}, false, nil
		}
		return externalapi.RequestType{}, false, fmt.Errorf("select request type by id: %w", err)
	}

	return externalapi.RequestType{
		ID:          row.ID,
		APIID:       row.APIID,
		URLTemplate: row.URLTemplate,
		Description: row.Description,
		VersionIter: row.VersionIter,
	}, true, nil
}
