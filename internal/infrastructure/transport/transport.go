package transport

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"github.com/riskibarqy/sportsfeed/internal/platform/resilience"
	"github.com/riskibarqy/sportsfeed/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 6 << 20
)

var (
	errTransient      = crerr.New("upstream transient failure")
	errUpstreamStatus = crerr.New("upstream status")
	errBodyTooLarge   = crerr.New("upstream body too large")
)

// Kind selects the HTTP client implementation.
type Kind string

const (
	KindNetHTTP  Kind = "nethttp"
	KindFastHTTP Kind = "fasthttp"
)

type Config struct {
	Kind           Kind
	Timeout        time.Duration
	MaxBodyBytes   int
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// New builds the transport named by cfg.Kind.
func New(cfg Config) (usecase.Transport, error) {
	switch cfg.Kind {
	case "", KindNetHTTP:
		return NewHTTPTransport(cfg, nil), nil
	case KindFastHTTP:
		return NewFastHTTPTransport(cfg), nil
	default:
		return nil, crerr.Newf("unknown transport kind %q", cfg.Kind)
	}
}

type roundTrip func(ctx context.Context, url string, headers map[string]string) (*usecase.TransportResponse, error)

// guarded runs one GET through the breaker. 5xx and 429 responses count as
// breaker failures but are still handed back to the caller.
func guarded(ctx context.Context, breaker *resilience.CircuitBreaker, logger *logging.Logger, url string, headers map[string]string, do roundTrip) (*usecase.TransportResponse, error) {
	logger.DebugContext(ctx, "outbound request", "curl_preview", curlPreview(url, headers))

	var resp *usecase.TransportResponse
	err := breaker.Execute(func() error {
		out, err := do(ctx, url, headers)
		if err != nil {
			return err
		}
		resp = out
		if isTransientStatus(out.StatusCode) {
			return crerr.Wrapf(errUpstreamStatus, "status=%d", out.StatusCode)
		}
		return nil
	}, isBreakerFailure)

	switch {
	case err == nil:
		return resp, nil
	case errors.Is(err, errUpstreamStatus):
		return resp, nil
	case errors.Is(err, resilience.ErrCircuitOpen):
		logger.WarnContext(ctx, "outbound circuit breaker rejected request", "state", breaker.State())
		return nil, crerr.Wrapf(usecase.ErrDependencyUnavailable, "%s", err.Error())
	default:
		return nil, err
	}
}

func isBreakerFailure(err error) bool {
	return errors.Is(err, errTransient) || errors.Is(err, errUpstreamStatus)
}

func isTransientStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

var sensitiveHeaders = map[string]struct{}{
	"authorization": {},
	"x-auth-token":  {},
}

func curlPreview(url string, headers map[string]string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	_, _ = buf.WriteString("curl -X GET '")
	_, _ = buf.WriteString(url)
	_ = buf.WriteByte('\'')
	for _, key := range keys {
		value := headers[key]
		if _, secret := sensitiveHeaders[strings.ToLower(key)]; secret {
			value = "***"
		}
		_, _ = buf.WriteString(" -H '")
		_, _ = buf.WriteString(key)
		_, _ = buf.WriteString(": ")
		_, _ = buf.WriteString(value)
		_ = buf.WriteByte('\'')
	}
	return buf.String()
}

func normalizeMaxBodyBytes(limit int) int {
	if limit <= 0 {
		return maxBodyBytes
	}
	return limit
}

func normalizeTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return defaultTimeout
	}
	return timeout
}
