package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"github.com/riskibarqy/sportsfeed/internal/platform/resilience"
	"github.com/riskibarqy/sportsfeed/internal/usecase"
)

func TestHTTPTransport_GetPassesHeadersAndBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Auth-Token"); got != "secret" {
			t.Errorf("unexpected auth header: got=%q want=secret", got)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	transport := NewHTTPTransport(Config{Timeout: time.Second, Logger: logging.NewNop()}, server.Client())
	resp, err := transport.Get(context.Background(), server.URL, map[string]string{"X-Auth-Token": "secret"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusOK || string(resp.Body) != `{"ok":true}` {
		t.Fatalf("unexpected response: status=%d body=%s", resp.StatusCode, resp.Body)
	}
}

func TestHTTPTransport_ServerErrorsTripBreaker(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	transport := NewHTTPTransport(Config{
		Logger: logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, server.Client())

	for i := 0; i < 2; i++ {
		resp, err := transport.Get(context.Background(), server.URL, nil)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("unexpected status: got=%d want=%d", resp.StatusCode, http.StatusServiceUnavailable)
		}
	}

	_, err := transport.Get(context.Background(), server.URL, nil)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("open breaker must not hit upstream: got=%d want=2", got)
	}
}

func TestHTTPTransport_ClientErrorsDoNotTripBreaker(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	transport := NewHTTPTransport(Config{
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1},
	}, server.Client())

	for i := 0; i < 3; i++ {
		resp, err := transport.Get(context.Background(), server.URL, nil)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("unexpected status: got=%d want=%d", resp.StatusCode, http.StatusForbidden)
		}
	}
}

func TestFastHTTPTransport_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("Accept")))
	}))
	defer server.Close()

	transport, err := New(Config{Kind: KindFastHTTP, Timeout: time.Second, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	resp, err := transport.Get(context.Background(), server.URL, map[string]string{"Accept": "application/json"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(resp.Body) != "application/json" {
		t.Fatalf("unexpected body: got=%q want=application/json", resp.Body)
	}
}

func TestTransports_RejectOversizedBody(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	breaker := resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1}
	cfg := Config{Timeout: time.Second, MaxBodyBytes: 32, CircuitBreaker: breaker, Logger: logging.NewNop()}
	fast := cfg
	fast.Kind = KindFastHTTP
	fastTransport, err := New(fast)
	if err != nil {
		t.Fatalf("new fasthttp transport: %v", err)
	}

	transports := map[string]usecase.Transport{
		"nethttp":  NewHTTPTransport(cfg, server.Client()),
		"fasthttp": fastTransport,
	}
	for name, transport := range transports {
		for i := 0; i < 2; i++ {
			resp, err := transport.Get(context.Background(), server.URL, nil)
			if !errors.Is(err, errBodyTooLarge) {
				t.Fatalf("%s: expected body too large error, got resp=%v err=%v", name, resp, err)
			}
		}
	}
	if got := hits.Load(); got != 4 {
		t.Fatalf("oversized bodies must not open the breaker: hits=%d want=4", got)
	}
}

func TestNew_RejectsUnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Kind: "grpc"}); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestCurlPreview_RedactsSecrets(t *testing.T) {
	t.Parallel()

	got := curlPreview("https://api.football-data.org/v2/competitions/2021/matches", map[string]string{
		"X-Auth-Token": "secret",
		"Accept":       "application/json",
	})
	if strings.Contains(got, "secret") {
		t.Fatalf("preview leaked token: %s", got)
	}
	want := "curl -X GET 'https://api.football-data.org/v2/competitions/2021/matches' -H 'Accept: application/json' -H 'X-Auth-Token: ***'"
	if got != want {
		t.Fatalf("unexpected preview:\ngot=%s\nwant=%s", got, want)
	}
}
