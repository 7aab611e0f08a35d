package transport

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"github.com/riskibarqy/sportsfeed/internal/platform/resilience"
	"github.com/riskibarqy/sportsfeed/internal/usecase"
	"github.com/valyala/fasthttp"
)

// FastHTTPTransport trades otelhttp tracing for fasthttp's pooled buffers.
type FastHTTPTransport struct {
	client  *fasthttp.Client
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewFastHTTPTransport(cfg Config) *FastHTTPTransport {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := normalizeTimeout(cfg.Timeout)

	return &FastHTTPTransport{
		client: &fasthttp.Client{
			Name:                "sportsfeed",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: normalizeMaxBodyBytes(cfg.MaxBodyBytes),
		},
		timeout: timeout,
		breaker: resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		logger:  logger,
	}
}

func (t *FastHTTPTransport) Get(ctx context.Context, url string, headers map[string]string) (*usecase.TransportResponse, error) {
	return guarded(ctx, t.breaker, t.logger, url, headers, t.do)
}

func (t *FastHTTPTransport) do(ctx context.Context, url string, headers map[string]string) (*usecase.TransportResponse, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	deadline := time.Now().Add(t.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := t.client.DoDeadline(req, resp, deadline); err != nil {
		if errors.Is(err, fasthttp.ErrBodyTooLarge) {
			return nil, crerr.Wrapf(errBodyTooLarge, "limit=%d bytes", t.client.MaxResponseBodySize)
		}
		return nil, crerr.Wrapf(errTransient, "send request: %v", err)
	}

	body := append([]byte(nil), resp.Body()...)
	return &usecase.TransportResponse{StatusCode: resp.StatusCode(), Body: body}, nil
}
