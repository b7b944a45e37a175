package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.SquadSize != 15 || cfg.StarterCount != 11 {
		t.Fatalf("unexpected squad defaults: %d/%d", cfg.SquadSize, cfg.StarterCount)
	}
	if cfg.BudgetCap != 1000 {
		t.Fatalf("unexpected budget cap: %d", cfg.BudgetCap)
	}
	if cfg.MaxPerClub != 3 {
		t.Fatalf("unexpected max per club: %d", cfg.MaxPerClub)
	}
	if !cfg.TransferDeadline.IsZero() {
		t.Fatalf("expected zero transfer deadline, got %s", cfg.TransferDeadline)
	}
	if cfg.DeadlineLocksCaptaincy {
		t.Fatalf("expected captaincy unlocked by default")
	}
	if cfg.PricefeedEnabled {
		t.Fatalf("expected pricefeed disabled by default")
	}
	if cfg.PriceSyncWorkers != 4 {
		t.Fatalf("unexpected price sync workers: %d", cfg.PriceSyncWorkers)
	}
}

func TestLoad_TransferDeadlineParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("valid RFC3339", func(t *testing.T) {
		t.Setenv("TRANSFER_DEADLINE", "2026-09-12T10:00:00Z")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		want := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
		if !cfg.TransferDeadline.Equal(want) {
			t.Fatalf("unexpected deadline: %s", cfg.TransferDeadline)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Setenv("TRANSFER_DEADLINE", "12-09-2026")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid TRANSFER_DEADLINE")
		}
	})
}

func TestLoad_RosterRuleValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("starter count above squad size", func(t *testing.T) {
		t.Setenv("ROSTER_SQUAD_SIZE", "11")
		t.Setenv("ROSTER_STARTER_COUNT", "12")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when starter count exceeds squad size")
		}
	})

	t.Run("zero budget cap", func(t *testing.T) {
		t.Setenv("ROSTER_BUDGET_CAP", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for ROSTER_BUDGET_CAP=0")
		}
	})
}

func TestLoad_PricefeedRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PRICEFEED_ENABLED", "true")
	t.Setenv("PRICEFEED_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PRICEFEED_ENABLED=true without PRICEFEED_TOKEN")
	}
}

func TestLoad_PricefeedConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PRICEFEED_ENABLED", "true")
	t.Setenv("PRICEFEED_TOKEN", "feed-token")
	t.Setenv("PRICEFEED_TIMEOUT", "5s")
	t.Setenv("PRICEFEED_MAX_RETRIES", "3")
	t.Setenv("PRICEFEED_MAX_PARALLEL", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.PricefeedEnabled {
		t.Fatalf("expected PricefeedEnabled=true")
	}
	if cfg.PricefeedTimeout != 5*time.Second {
		t.Fatalf("unexpected pricefeed timeout: %s", cfg.PricefeedTimeout)
	}
	if cfg.PricefeedMaxRetries != 3 {
		t.Fatalf("unexpected pricefeed retries: %d", cfg.PricefeedMaxRetries)
	}
	if cfg.PricefeedMaxParallel != 8 {
		t.Fatalf("unexpected pricefeed parallelism: %d", cfg.PricefeedMaxParallel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
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

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
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
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}
