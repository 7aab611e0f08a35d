package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/sportsfeed/internal/domain/fixture"
	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
	"github.com/riskibarqy/sportsfeed/internal/domain/team"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"github.com/riskibarqy/sportsfeed/internal/usecase"
)

// FeedService is the preference-store facing surface of the fixture feed.
type FeedService interface {
	Refresh(ctx context.Context) (bool, error)
	Feed(ctx context.Context, teamIDs []int64, refresh bool) ([]fixture.Fixture, error)
	ListActiveTeams(ctx context.Context) ([]team.Team, error)
	ValidateTeams(ctx context.Context, teamIDs []int64) error
}

type AuditLister interface {
	List(ctx context.Context, filter requestaudit.Filter) ([]requestaudit.Audit, error)
}

type Handler struct {
	feed      FeedService
	audits    AuditLister
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(feed FeedService, audits AuditLister, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		feed:      feed,
		audits:    audits,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.feed.ListActiveTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamDTO{ID: t.ID, Name: t.Name})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

type fixturesQuery struct {
	TeamIDs []int64 `validate:"required,min=1,max=50,dive,gte=0"`
	Refresh bool
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	query, err := parseFixturesQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.feed.ValidateTeams(ctx, query.TeamIDs); err != nil {
		h.logger.WarnContext(ctx, "list fixtures rejected", "team_ids", query.TeamIDs, "error", err)
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.feed.Feed(ctx, query.TeamIDs, query.Refresh)
	if err != nil {
		h.logger.ErrorContext(ctx, "list fixtures failed", "team_ids", query.TeamIDs, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func parseFixturesQuery(values url.Values) (fixturesQuery, error) {
	var out fixturesQuery
	for _, raw := range values["team_id"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return fixturesQuery{}, fmt.Errorf("%w: team_id %q is not an integer", usecase.ErrInvalidInput, part)
			}
			out.TeamIDs = append(out.TeamIDs, id)
		}
	}

	if raw := strings.TrimSpace(values.Get("refresh")); raw != "" {
		refresh, err := strconv.ParseBool(raw)
		if err != nil {
			return fixturesQuery{}, fmt.Errorf("%w: refresh must be a boolean", usecase.ErrInvalidInput)
		}
		out.Refresh = refresh
	}
	return out, nil
}

type refreshRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

func (h *Handler) RunRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefresh")
	defer span.End()

	req, err := decodeRefreshRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	started := time.Now()
	refreshed, err := h.feed.Refresh(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "internal refresh failed", "reason", req.Reason, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "internal refresh finished",
		"reason", req.Reason,
		"refreshed", refreshed,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	writeSuccess(ctx, w, http.StatusOK, refreshDTO{Refreshed: refreshed})
}

func decodeRefreshRequest(r *http.Request) (refreshRequest, error) {
	if r.Body == nil {
		return refreshRequest{}, nil
	}
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req refreshRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return refreshRequest{}, nil
		}
		return refreshRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}

type auditsQuery struct {
	APIID         *int64 `validate:"omitempty,gte=0"`
	RequestTypeID *int64 `validate:"omitempty,gte=0"`
	Limit         int    `validate:"gte=0,lte=500"`
}

func (h *Handler) ListAudits(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAudits")
	defer span.End()

	query, err := parseAuditsQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	audits, err := h.audits.List(ctx, requestaudit.Filter{
		APIID:         query.APIID,
		RequestTypeID: query.RequestTypeID,
		Limit:         query.Limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list audits failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]auditDTO, 0, len(audits))
	for _, a := range audits {
		items = append(items, auditToDTO(a))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func parseAuditsQuery(values url.Values) (auditsQuery, error) {
	var out auditsQuery
	var err error
	if out.APIID, err = parseOptionalInt64(values, "api_id"); err != nil {
		return auditsQuery{}, err
	}
	if out.RequestTypeID, err = parseOptionalInt64(values, "request_type_id"); err != nil {
		return auditsQuery{}, err
	}
	limit, err := parseOptionalInt64(values, "limit")
	if err != nil {
		return auditsQuery{}, err
	}
	if limit != nil {
		out.Limit = int(*limit)
	}
	return out, nil
}

func parseOptionalInt64(values url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not an integer", usecase.ErrInvalidInput, key, raw)
	}
	return &v, nil
}
