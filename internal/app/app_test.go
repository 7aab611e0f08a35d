package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/sportsfeed/internal/config"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"github.com/riskibarqy/sportsfeed/internal/usecase"
)

func memoryConfig() config.Config {
	return config.Config{
		ServiceName:                       "sportsfeed",
		HTTPAddr:                          ":8080",
		ReadTimeout:                       time.Second,
		WriteTimeout:                      time.Second,
		StorageDriver:                     config.StorageDriverMemory,
		CacheEnabled:                      true,
		CacheTTL:                          time.Minute,
		FootballDataAPIID:                 1,
		FootballDataRequestTypeID:         1,
		FootballDataCompetitionID:         2021,
		FootballDataTimeout:               time.Second,
		FootballDataTransport:             config.TransportNetHTTP,
		FootballDataCircuitFailureCount:   5,
		FootballDataCircuitOpenTimeout:    time.Second,
		FootballDataCircuitHalfOpenMaxReq: 1,
		CooldownPerMinuteScope:            config.CooldownScopeGlobal,
		RefreshConcurrency:                1,
	}
}

func TestNew_MemoryStorage(t *testing.T) {
	t.Parallel()

	app, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer app.Close()

	if app.Scheduler != nil {
		t.Fatalf("scheduler must stay disabled when refresh interval is zero")
	}

	teams, err := app.Feed.ListActiveTeams(context.Background())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 20 {
		t.Fatalf("unexpected seeded team count: got=%d want=20", len(teams))
	}

	server, err := app.HTTPServer()
	if err != nil {
		t.Fatalf("http server: %v", err)
	}
	if server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", server.Addr)
	}
}

func TestNew_SchedulerEnabled(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.RefreshInterval = time.Minute
	app, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if app.Scheduler == nil {
		t.Fatalf("expected scheduler when refresh interval is set")
	}
}

func TestNew_RejectsUnknownStorage(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"
	_, err := New(context.Background(), cfg, logging.NewNop())
	if !errors.Is(err, usecase.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNew_RejectsUnknownTransport(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.FootballDataTransport = "grpc"
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected transport error")
	}
}
