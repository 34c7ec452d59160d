package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// baseEnv pins the keys that change validation so a developer's shell does
// not leak into the tests.
func baseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", "")
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DB_URL", "")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
	t.Setenv("SEED_DEMO", "")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	baseEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	baseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	baseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn got=%q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("AUTH_JWT_SECRET", "secret")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
		if cfg.StorageDriver != StorageMemory {
			t.Fatalf("unexpected default storage driver got=%q want=%q", cfg.StorageDriver, StorageMemory)
		}
	})
}

func TestLoad_JWTSecretRequiredOutsideDev(t *testing.T) {
	baseEnv(t)
	t.Setenv("APP_ENV", EnvStage)

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when AUTH_JWT_SECRET is missing in stage")
	}

	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_JWT_ISSUER", "accounts.example.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AuthJWTSecret != "s3cret" || cfg.AuthJWTIssuer != "accounts.example.com" {
		t.Fatalf("unexpected auth config got=%q/%q", cfg.AuthJWTSecret, cfg.AuthJWTIssuer)
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Run("postgres requires DB_URL", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("STORAGE_DRIVER", "postgres")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for postgres without DB_URL")
		}
	})

	t.Run("postgres with DB_URL", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("STORAGE_DRIVER", "Postgres")
		t.Setenv("DB_URL", "postgres://localhost:5432/tournaments?sslmode=disable")
		t.Setenv("DB_MAX_OPEN_CONNS", "8")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StoragePostgres || cfg.DBMaxOpenConns != 8 {
			t.Fatalf("unexpected storage config got=%q/%d", cfg.StorageDriver, cfg.DBMaxOpenConns)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("STORAGE_DRIVER", "mongo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	baseEnv(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	baseEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	baseEnv(t)
	t.Setenv("APP_SERVICE_NAME", "tournament-manager-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "tournament-manager-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Run("default wildcard", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Run("default true", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 30*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_StandingsConfigParsing(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("STANDINGS_TOP_SCORERS", "")
		t.Setenv("STANDINGS_WORKERS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StandingsTopScorers != 5 || cfg.StandingsWorkers != 4 {
			t.Fatalf("unexpected standings defaults got=%d/%d want=5/4", cfg.StandingsTopScorers, cfg.StandingsWorkers)
		}
		if !cfg.LiveFeedEnabled {
			t.Fatalf("expected live feed enabled by default")
		}
	})

	t.Run("workers must be positive", func(t *testing.T) {
		baseEnv(t)
		t.Setenv("STANDINGS_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for STANDINGS_WORKERS=0")
		}
	})
}

func TestLoad_DotEnvFile(t *testing.T) {
	baseEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("STANDINGS_TOP_SCORERS_FROM_FILE=1\nAPP_SERVICE_VERSION_FILE=ignored\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	t.Setenv("APP_SERVICE_VERSION", "from-shell")
	t.Cleanup(func() {
		_ = os.Unsetenv("STANDINGS_TOP_SCORERS_FROM_FILE")
		_ = os.Unsetenv("APP_SERVICE_VERSION_FILE")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got := os.Getenv("STANDINGS_TOP_SCORERS_FROM_FILE"); got != "1" {
		t.Fatalf("env file not loaded got=%q want=1", got)
	}
	if cfg.ServiceVersion != "from-shell" {
		t.Fatalf("shell value must win got=%q", cfg.ServiceVersion)
	}
}

func TestLoad_MissingDotEnvIsIgnored(t *testing.T) {
	baseEnv(t)
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	if _, err := Load(); err != nil {
		t.Fatalf("missing env file must not fail: %v", err)
	}
}
