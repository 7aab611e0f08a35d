package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/sportsfeed/internal/domain/externalapi"
	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
	"github.com/riskibarqy/sportsfeed/internal/platform/id"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// payloadJSON keeps JSON numbers as json.Number so large ids survive decoding.
var payloadJSON = sonic.Config{UseNumber: true}.Froze()

// TransportResponse is the raw outcome of one GET.
type TransportResponse struct {
	StatusCode int
	Body       []byte
}

// Transport performs a single outbound GET. It must honor ctx deadlines.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (*TransportResponse, error)
}

// ContentProvider holds the per-provider hooks of the fetch lifecycle.
type ContentProvider interface {
	Headers() map[string]string
	Validate(payload map[string]any) error
	// HandleContent reconciles every item in payload and reports whether all succeeded.
	// Items already applied are kept when a later one fails.
	HandleContent(ctx context.Context, api externalapi.API, payload map[string]any) (bool, error)
}

type FetchClientConfig struct {
	APIID         int64
	RequestTypeID int64
	// URL skips template resolution when set.
	URL     string
	URLArgs []string
}

// FetchClient runs the guarded GET lifecycle for one request type:
// cooldown, dispatch, audit, duplicate suppression, validation and reconciliation.
type FetchClient struct {
	cfg       FetchClientConfig
	apis      externalapi.Repository
	audits    requestaudit.Repository
	cooldown  *CooldownPolicy
	locker    externalapi.Locker
	transport Transport
	provider  ContentProvider
	ids       id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewFetchClient(
	cfg FetchClientConfig,
	apis externalapi.Repository,
	audits requestaudit.Repository,
	cooldown *CooldownPolicy,
	locker externalapi.Locker,
	transport Transport,
	provider ContentProvider,
	ids id.Generator,
	logger *logging.Logger,
) *FetchClient {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &FetchClient{
		cfg:       cfg,
		apis:      apis,
		audits:    audits,
		cooldown:  cooldown,
		locker:    locker,
		transport: transport,
		provider:  provider,
		ids:       ids,
		logger:    logger.With("api_id", cfg.APIID, "request_type_id", cfg.RequestTypeID),
		now:       time.Now,
	}
}

func (c *FetchClient) APIID() int64 {
	return c.cfg.APIID
}

// Request runs one fetch cycle. true means the data is current: work was done,
// skipped by cooldown, or already done by an identical earlier response.
// false means nothing durable changed beyond an unsuccessful audit row.
// Errors are reserved for configuration, consistency and persistence faults.
func (c *FetchClient) Request(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchClient.Request",
		attribute.Int64("api.id", c.cfg.APIID),
		attribute.Int64("request_type.id", c.cfg.RequestTypeID),
	)
	defer span.End()

	api, requestType, err := c.loadDescriptors(ctx)
	if err != nil {
		recordSpanError(span, err)
		return false, err
	}

	var ok bool
	run := func(ctx context.Context) error {
		var runErr error
		ok, runErr = c.request(ctx, api, requestType)
		return runErr
	}

	if c.locker == nil {
		err = run(ctx)
	} else {
		err = c.locker.WithLock(ctx, api.ID, run)
	}
	if err != nil {
		recordSpanError(span, err)
		return false, err
	}
	span.SetAttributes(attribute.Bool("fetch.ok", ok))
	return ok, nil
}

func (c *FetchClient) loadDescriptors(ctx context.Context) (externalapi.API, externalapi.RequestType, error) {
	api, exists, err := c.apis.GetAPIByID(ctx, c.cfg.APIID)
	if err != nil {
		return externalapi.API{}, externalapi.RequestType{}, fmt.Errorf("get api id=%d: %w", c.cfg.APIID, err)
	}
	if !exists {
		return externalapi.API{}, externalapi.RequestType{}, fmt.Errorf("%w: api id=%d not found", ErrConfiguration, c.cfg.APIID)
	}

	requestType, exists, err := c.apis.GetRequestTypeByID(ctx, c.cfg.RequestTypeID)
	if err != nil {
		return externalapi.API{}, externalapi.RequestType{}, fmt.Errorf("get request type id=%d: %w", c.cfg.RequestTypeID, err)
	}
	if !exists {
		return externalapi.API{}, externalapi.RequestType{}, fmt.Errorf("%w: request type id=%d not found", ErrConfiguration, c.cfg.RequestTypeID)
	}
	if requestType.APIID != api.ID {
		return externalapi.API{}, externalapi.RequestType{}, fmt.Errorf("%w: request type id=%d belongs to api id=%d, not %d",
			ErrConfiguration, requestType.ID, requestType.APIID, api.ID)
	}
	return api, requestType, nil
}

func (c *FetchClient) request(ctx context.Context, api externalapi.API, requestType externalapi.RequestType) (bool, error) {
	inCooldown, err := c.cooldown.IsInCooldown(ctx, api)
	if err != nil {
		return false, err
	}
	if inCooldown {
		c.logger.DebugContext(ctx, "fetch skipped, api is in cooldown")
		return true, nil
	}

	url, err := c.resolveURL(requestType)
	if err != nil {
		return false, err
	}

	requestedAt := c.now().UTC()
	resp, err := c.transport.Get(ctx, url, c.provider.Headers())
	if err != nil {
		c.logger.WarnContext(ctx, "fetch failed, transport error", "url", url, "error", err)
		return false, nil
	}
	if resp == nil {
		c.logger.WarnContext(ctx, "fetch failed, empty transport result", "url", url)
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WarnContext(ctx, "fetch failed, unexpected status", "url", url, "status", resp.StatusCode)
		return false, nil
	}
	if len(resp.Body) == 0 {
		c.logger.WarnContext(ctx, "fetch failed, empty body", "url", url, "status", resp.StatusCode)
		return false, nil
	}

	auditID, err := c.ids.NewID()
	if err != nil {
		return false, fmt.Errorf("generate audit id: %w", err)
	}
	contentHash := hashContent(resp.Body)
	audit := requestaudit.Audit{
		ID:            auditID,
		APIID:         api.ID,
		RequestTypeID: requestType.ID,
		URL:           url,
		RequestedAt:   requestedAt,
		ContentHash:   contentHash,
		ResponseCode:  resp.StatusCode,
		Successful:    false,
	}
	if err := c.audits.Create(ctx, audit); err != nil {
		return false, fmt.Errorf("create request audit: %w", err)
	}
	logger := c.logger.With("audit_id", auditID)

	duplicate, err := c.audits.HasSuccessfulDuplicate(ctx, requestType.ID, contentHash, auditID)
	if err != nil {
		return false, fmt.Errorf("check duplicate response: %w", err)
	}
	if duplicate {
		logger.InfoContext(ctx, "fetch skipped, identical response already processed", "content_hash", contentHash)
		return true, nil
	}

	var payload map[string]any
	if err := payloadJSON.Unmarshal(resp.Body, &payload); err != nil {
		logger.WarnContext(ctx, "fetch failed, response is not a json object", "error", err)
		return false, nil
	}
	if err := c.provider.Validate(payload); err != nil {
		logger.WarnContext(ctx, "fetch failed, response shape is invalid", "error", err)
		return false, nil
	}

	handled, err := c.provider.HandleContent(ctx, api, payload)
	if err != nil {
		return false, err
	}
	if !handled {
		logger.WarnContext(ctx, "fetch completed with rejected items")
		return false, nil
	}

	if err := c.audits.MarkSuccessful(ctx, auditID); err != nil {
		return false, fmt.Errorf("mark request audit successful: %w", err)
	}
	logger.InfoContext(ctx, "fetch completed", "url", url)
	return true, nil
}

func (c *FetchClient) resolveURL(requestType externalapi.RequestType) (string, error) {
	if url := strings.TrimSpace(c.cfg.URL); url != "" {
		return url, nil
	}
	url, err := requestType.ResolveURL(c.cfg.URLArgs...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrURLGeneration, err)
	}
	return url, nil
}

func hashContent(body []byte) string {
	sum := md5.Sum(body)
	return hex.EncodeToString(sum[:])
}
