package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ServerAddr() != "0.0.0.0:8080" {
		t.Errorf("ServerAddr = %q", cfg.Server.ServerAddr())
	}
	if cfg.Catalogue.Source != SourceFile || cfg.Catalogue.Format != FormatText {
		t.Errorf("Catalogue = %+v", cfg.Catalogue)
	}
	if cfg.Catalogue.GeoFormula != GeoCosines {
		t.Errorf("GeoFormula = %q", cfg.Catalogue.GeoFormula)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis enabled by default")
	}
	if cfg.Redis.CacheTTL != 10*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.Redis.CacheTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CATALOGUE_SOURCE", "postgres")
	t.Setenv("CATALOGUE_FORMAT", "yaml")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("POSTGRES_HOST", "db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Catalogue.Source != SourcePostgres || cfg.Catalogue.Format != FormatYAML {
		t.Errorf("Catalogue = %+v", cfg.Catalogue)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr() != "cache:6379" || cfg.Redis.CacheTTL != 30*time.Second {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	want := "postgres://catalogue:catalogue_secret@db:5432/catalogue_db?sslmode=disable"
	if got := cfg.Postgres.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown source", "CATALOGUE_SOURCE", "s3"},
		{"unknown format", "CATALOGUE_FORMAT", "xml"},
		{"unknown geo formula", "CATALOGUE_GEO_FORMULA", "vincenty"},
		{"file source without file", "CATALOGUE_FILE", ""},
		{"port out of range", "SERVER_PORT", "70000"},
		{"min above max conns", "POSTGRES_MIN_CONNS", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load with %s=%q succeeded, want error", tt.key, tt.val)
			}
		})
	}
}
