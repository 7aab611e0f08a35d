package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
	qb "github.com/riskibarqy/sportsfeed/internal/platform/querybuilder"
)

type RequestAuditRepository struct {
	db *sqlx.DB
}

func NewRequestAuditRepository(db *sqlx.DB) *RequestAuditRepository {
	return &RequestAuditRepository{db: db}
}

func (r *RequestAuditRepository) Create(ctx context.Context, audit requestaudit.Audit) error {
	if err := audit.Validate(); err != nil {
		return fmt.Errorf("validate request audit: %w", err)
	}

	insertModel := requestAuditTableModel{
		ID:            audit.ID,
		APIID:         audit.APIID,
		RequestTypeID: audit.RequestTypeID,
		URL:           audit.URL,
		RequestTime:   audit.RequestedAt.UTC(),
		ContentHash:   audit.ContentHash,
		ResponseCode:  audit.ResponseCode,
		Success:       audit.Successful,
	}
	query, args, err := qb.InsertModel("request_audits", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert request audit query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert request audit: %w", err)
	}
	return nil
}

func (r *RequestAuditRepository) MarkSuccessful(ctx context.Context, id string) error {
	query, args, err := qb.Update("request_audits").
		Set("success", true).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark request audit successful query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark request audit successful: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("request audit %q not found", id)
	}
	return nil
}

func (r *RequestAuditRepository) LatestRequestTime(ctx context.Context, apiID int64) (time.Time, bool, error) {
	query, args, err := qb.Select("request_time").
		From("request_audits").
		Where(qb.Eq("api_id", apiID)).
		OrderBy("request_time DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build select latest request time query: %w", err)
	}

	var latest time.Time
	if err := r.db.GetContext(ctx, &latest, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("select latest request time: %w", err)
	}
	return latest, true, nil
}

func (r *RequestAuditRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, qb.Compare("request_time", ">=", since.UTC()))
}

func (r *RequestAuditRepository) CountSinceByAPI(ctx context.Context, apiID int64, since time.Time) (int, error) {
	return r.count(ctx, qb.Eq("api_id", apiID), qb.Compare("request_time", ">=", since.UTC()))
}

func (r *RequestAuditRepository) count(ctx context.Context, conditions ...qb.Condition) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From("request_audits").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count request audits query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count request audits: %w", err)
	}
	return total, nil
}

func (r *RequestAuditRepository) HasSuccessfulDuplicate(ctx context.Context, requestTypeID int64, contentHash, excludeID string) (bool, error) {
	query, args, err := qb.Select("id").
		From("request_audits").
		Where(
			qb.Eq("request_type_id", requestTypeID),
			qb.Eq("content_hash", contentHash),
			qb.Eq("success", true),
			qb.Compare("id", "<>", excludeID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build select duplicate request audit query: %w", err)
	}

	var id string
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("select duplicate request audit: %w", err)
	}
	return true, nil
}

func (r *RequestAuditRepository) List(ctx context.Context, filter requestaudit.Filter) ([]requestaudit.Audit, error) {
	conditions := make([]qb.Condition, 0, 2)
	if filter.APIID != nil {
		conditions = append(conditions, qb.Eq("api_id", *filter.APIID))
	}
	if filter.RequestTypeID != nil {
		conditions = append(conditions, qb.Eq("request_type_id", *filter.RequestTypeID))
	}

	builder := qb.Select("id", "api_id", "request_type_id", "url", "request_time", "content_hash", "response_code", "success").
		From("request_audits").
		Where(conditions...).
		OrderBy("request_time DESC", "id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select request audits query: %w", err)
	}

	var rows []requestAuditTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select request audits: %w", err)
	}

	out := make([]requestaudit.Audit, 0, len(rows))
	for _, row := range rows {
		out = append(out, requestaudit.Audit{
			ID:            row.ID,
			APIID:         row.APIID,
			RequestTypeID: row.RequestTypeID,
			URL:           row.URL,
			RequestedAt:   row.RequestTime.UTC(),
			ContentHash:   row.ContentHash,
			ResponseCode:  row.ResponseCode,
			Successful:    row.Success,
		})
	}
	return out, nil
}
