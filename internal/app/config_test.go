package app

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "PREFS_BACKEND", "PAGE_SIZE", "REMOTE_CACHE_TTL", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(nil)
	if cfg.Port != "8080" || cfg.DBDriver != "sqlite" || cfg.PrefsBackend != "db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PageSize != 30 || cfg.MaxAppends != 3 {
		t.Fatalf("paging defaults: size=%d appends=%d", cfg.PageSize, cfg.MaxAppends)
	}
	if cfg.RemoteCacheTTL != time.Hour {
		t.Fatalf("cache ttl: %v", cfg.RemoteCacheTTL)
	}
	if cfg.CORSOrigins != nil {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("PAGE_SIZE", "50")
	t.Setenv("REMOTE_CACHE_TTL", "90")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("OFF_ENABLED", "false")

	cfg := LoadConfig(nil)
	if cfg.DBDriver != "postgres" {
		t.Fatalf("driver: %q", cfg.DBDriver)
	}
	if cfg.PageSize != 50 {
		t.Fatalf("page size: %d", cfg.PageSize)
	}
	if cfg.RemoteCacheTTL != 90*time.Second {
		t.Fatalf("cache ttl: %v", cfg.RemoteCacheTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.OFFEnabled {
		t.Fatalf("remote should be disabled")
	}
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	if _, err := openDB(nil, Config{DBDriver: "mysql"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
