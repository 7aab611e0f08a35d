package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sportsfeed/external/footballdata"
	"github.com/riskibarqy/sportsfeed/internal/config"
	"github.com/riskibarqy/sportsfeed/internal/domain/externalapi"
	"github.com/riskibarqy/sportsfeed/internal/domain/fixture"
	"github.com/riskibarqy/sportsfeed/internal/domain/mapping"
	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
	"github.com/riskibarqy/sportsfeed/internal/domain/team"
	"github.com/riskibarqy/sportsfeed/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/sportsfeed/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/sportsfeed/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/sportsfeed/internal/infrastructure/transport"
	"github.com/riskibarqy/sportsfeed/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/sportsfeed/internal/platform/cache"
	"github.com/riskibarqy/sportsfeed/internal/platform/id"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"github.com/riskibarqy/sportsfeed/internal/platform/resilience"
	"github.com/riskibarqy/sportsfeed/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// App holds the wired services shared by the api and refresh binaries.
type App struct {
	Feed      *usecase.FeedService
	Audits    *usecase.AuditService
	Scheduler *usecase.RefreshScheduler

	cfg    config.Config
	logger *logging.Logger
	db     *sqlx.DB
}

type repositories struct {
	apis     externalapi.Repository
	audits   requestaudit.Repository
	mappings mapping.Repository
	fixtures fixture.Repository
	teams    team.Repository
	locker   externalapi.Locker
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &App{cfg: cfg, logger: logger}

	repos, err := app.buildRepositories(ctx)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cache.NewTeamRepository(repos.teams, store)
		repos.mappings = cache.NewMappingRepository(repos.mappings, store)
	}

	httpTransport, err := transport.New(transport.Config{
		Kind:    transport.Kind(cfg.FootballDataTransport),
		Timeout: cfg.FootballDataTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
		Logger: logger.Named("transport"),
	})
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("build transport: %w", err)
	}

	mapper := usecase.NewIdentifierMapper(repos.apis, repos.mappings)
	reconciler := usecase.NewFixtureReconciler(mapper, repos.fixtures, logger.Named("reconciler"))
	provider := footballdata.NewProvider(footballdata.ProviderConfig{
		APIKey:        cfg.FootballDataAPIKey,
		CompetitionID: cfg.FootballDataCompetitionID,
		Logger:        logger.Named("footballdata"),
	}, reconciler)

	cooldown := usecase.NewCooldownPolicy(repos.audits, usecase.PerMinuteScope(cfg.CooldownPerMinuteScope))
	fetcher := usecase.NewFetchClient(
		usecase.FetchClientConfig{
			APIID:         cfg.FootballDataAPIID,
			RequestTypeID: cfg.FootballDataRequestTypeID,
			URLArgs:       provider.URLArgs(),
		},
		repos.apis,
		repos.audits,
		cooldown,
		repos.locker,
		httpTransport,
		provider,
		id.NewUUIDGenerator(),
		logger.Named("fetch"),
	)

	app.Feed = usecase.NewFeedService(
		[]usecase.Fetcher{fetcher},
		repos.fixtures,
		repos.teams,
		cfg.RefreshConcurrency,
		logger.Named("feed"),
	)
	app.Audits = usecase.NewAuditService(repos.audits)

	if cfg.RefreshInterval > 0 {
		scheduler, err := usecase.NewRefreshScheduler(app.Feed, cfg.RefreshInterval, logger.Named("scheduler"))
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("build refresh scheduler: %w", err)
		}
		app.Scheduler = scheduler
	}

	return app, nil
}

func (a *App) buildRepositories(ctx context.Context) (repositories, error) {
	switch a.cfg.StorageDriver {
	case config.StorageDriverMemory:
		mappings, err := memory.NewMappingRepository(memory.SeedMappings())
		if err != nil {
			return repositories{}, fmt.Errorf("seed mappings: %w", err)
		}
		a.logger.Warn("using in-memory storage, data is lost on restart")
		return repositories{
			apis:     memory.NewExternalAPIRepository(memory.SeedAPIs(), memory.SeedRequestTypes()),
			audits:   memory.NewRequestAuditRepository(),
			mappings: mappings,
			fixtures: memory.NewFixtureRepository(nil),
			teams:    memory.NewTeamRepository(memory.SeedTeams()),
			locker:   memory.NewLocker(),
		}, nil
	case config.StorageDriverPostgres:
		db, err := openDatabase(ctx, a.cfg)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		return repositories{
			apis:     postgres.NewExternalAPIRepository(db),
			audits:   postgres.NewRequestAuditRepository(db),
			mappings: postgres.NewMappingRepository(db),
			fixtures: postgres.NewFixtureRepository(db),
			teams:    postgres.NewTeamRepository(db),
			locker:   postgres.NewAdvisoryLocker(db, a.logger.Named("locker")),
		}, nil
	default:
		return repositories{}, fmt.Errorf("%w: unsupported storage driver %q", usecase.ErrConfiguration, a.cfg.StorageDriver)
	}
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	otelsql.ReportDBStatsMetrics(db.DB)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", usecase.ErrDependencyUnavailable, err)
	}
	return db, nil
}

// HTTPServer builds the public server around the feed and audit services.
func (a *App) HTTPServer() (*http.Server, error) {
	if strings.TrimSpace(a.cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.Feed, a.Audits, a.logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, a.logger, a.cfg.CORSAllowedOrigins, a.cfg.InternalJobToken)

	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
