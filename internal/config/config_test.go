package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("unexpected StorageDriver: got=%q want=%q", cfg.StorageDriver, StorageDriverPostgres)
	}
	if cfg.FootballDataAPIID != 1 || cfg.FootballDataRequestTypeID != 1 {
		t.Fatalf("unexpected football-data ids: api=%d request_type=%d", cfg.FootballDataAPIID, cfg.FootballDataRequestTypeID)
	}
	if cfg.FootballDataCompetitionID != 2021 {
		t.Fatalf("unexpected FootballDataCompetitionID: got=%d want=2021", cfg.FootballDataCompetitionID)
	}
	if cfg.FootballDataTimeout != 20*time.Second {
		t.Fatalf("unexpected FootballDataTimeout: %s", cfg.FootballDataTimeout)
	}
	if cfg.FootballDataTransport != TransportNetHTTP {
		t.Fatalf("unexpected FootballDataTransport: %q", cfg.FootballDataTransport)
	}
	if cfg.CooldownPerMinuteScope != CooldownScopeGlobal {
		t.Fatalf("unexpected CooldownPerMinuteScope: %q", cfg.CooldownPerMinuteScope)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
	if cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("expected PyroscopeAppName to default to service name, got %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RejectsInvalidEnums(t *testing.T) {
	cases := map[string]string{
		"STORAGE_DRIVER":            "sqlite",
		"FOOTBALLDATA_TRANSPORT":    "grpc",
		"COOLDOWN_PER_MINUTE_SCOPE": "tenant",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_ValidatesNumbersAndDurations(t *testing.T) {
	cases := map[string]string{
		"FOOTBALLDATA_TIMEOUT":                   "0s",
		"FOOTBALLDATA_COMPETITION_ID":            "0",
		"FOOTBALLDATA_API_ID":                    "abc",
		"FOOTBALLDATA_CIRCUIT_FAILURE_COUNT":     "0",
		"FOOTBALLDATA_CIRCUIT_HALF_OPEN_MAX_REQ": "0",
		"REFRESH_INTERVAL":                       "-1m",
		"REFRESH_CONCURRENCY":                    "0",
		"DB_MAX_OPEN_CONNS":                      "1",
		"CACHE_TTL":                              "nope",
		"APP_READ_TIMEOUT":                       "-5s",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_RefreshIntervalZeroDisablesScheduler(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("REFRESH_INTERVAL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RefreshInterval != 0 {
		t.Fatalf("unexpected RefreshInterval: %s", cfg.RefreshInterval)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn=\"https://token@api.uptrace.dev?grpc=4317\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_ProdRequiresInternalJobToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without INTERNAL_JOB_TOKEN")
	}
}

func TestLoad_ReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "FOOTBALLDATA_API_KEY=from-file\nFOOTBALLDATA_COMPETITION_ID=2014\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_ENV_FILE", path)
	t.Setenv("FOOTBALLDATA_COMPETITION_ID", "2021")
	// registered so the original value is restored after godotenv sets it
	t.Setenv("FOOTBALLDATA_API_KEY", "")
	if err := os.Unsetenv("FOOTBALLDATA_API_KEY"); err != nil {
		t.Fatalf("unset env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballDataAPIKey != "from-file" {
		t.Fatalf("unexpected FootballDataAPIKey: got=%q want=%q", cfg.FootballDataAPIKey, "from-file")
	}
	if cfg.FootballDataCompetitionID != 2021 {
		t.Fatalf("environment must win over file: got=%d want=2021", cfg.FootballDataCompetitionID)
	}
}
