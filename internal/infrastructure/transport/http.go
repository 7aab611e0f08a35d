package transport

import (
	"context"
	"io"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"github.com/riskibarqy/sportsfeed/internal/platform/resilience"
	"github.com/riskibarqy/sportsfeed/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPTransport is the net/http transport, traced through otelhttp.
type HTTPTransport struct {
	client       *http.Client
	maxBodyBytes int
	breaker      *resilience.CircuitBreaker
	logger       *logging.Logger
}

// NewHTTPTransport uses client when given, otherwise an instrumented client with cfg.Timeout.
func NewHTTPTransport(cfg Config, client *http.Client) *HTTPTransport {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	if client == nil {
		client = &http.Client{
			Timeout:   normalizeTimeout(cfg.Timeout),
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &HTTPTransport{
		client:       client,
		maxBodyBytes: normalizeMaxBodyBytes(cfg.MaxBodyBytes),
		breaker:      resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		logger:       logger,
	}
}

func (t *HTTPTransport) Get(ctx context.Context, url string, headers map[string]string) (*usecase.TransportResponse, error) {
	return guarded(ctx, t.breaker, t.logger, url, headers, t.do)
}

func (t *HTTPTransport) do(ctx context.Context, url string, headers map[string]string) (*usecase.TransportResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, crerr.Wrapf(errTransient, "send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(t.maxBodyBytes)+1))
	if err != nil {
		return nil, crerr.Wrapf(errTransient, "read response body: %v", err)
	}
	if len(body) > t.maxBodyBytes {
		return nil, crerr.Wrapf(errBodyTooLarge, "limit=%d bytes", t.maxBodyBytes)
	}

	return &usecase.TransportResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
