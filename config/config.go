package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Catalogue CatalogueConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"SERVER_HOST"`
	Port         int           `mapstructure:"SERVER_PORT" validate:"gt=0,lte=65535"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout  time.Duration `mapstructure:"SERVER_IDLE_TIMEOUT" validate:"gt=0"`
}

// Catalogue sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Batch file formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Great-circle formulas.
const (
	GeoCosines   = "cosines"
	GeoHaversine = "haversine"
)

// CatalogueConfig selects where the batch comes from and how it is read.
type CatalogueConfig struct {
	Source     string `mapstructure:"CATALOGUE_SOURCE" validate:"oneof=file postgres"`
	File       string `mapstructure:"CATALOGUE_FILE" validate:"required_if=Source file"`
	Format     string `mapstructure:"CATALOGUE_FORMAT" validate:"oneof=text yaml"`
	GeoFormula string `mapstructure:"CATALOGUE_GEO_FORMULA" validate:"oneof=cosines haversine"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `mapstructure:"POSTGRES_HOST"`
	Port     int    `mapstructure:"POSTGRES_PORT"`
	User     string `mapstructure:"POSTGRES_USER"`
	Password string `mapstructure:"POSTGRES_PASSWORD"`
	DBName   string `mapstructure:"POSTGRES_DB"`
	SSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	MaxConns int32  `mapstructure:"POSTGRES_MAX_CONNS" validate:"gte=1"`
	MinConns int32  `mapstructure:"POSTGRES_MIN_CONNS" validate:"gte=0,ltefield=MaxConns"`
}

// RedisConfig holds Redis connection settings for the route statistics cache.
type RedisConfig struct {
	Enabled   bool          `mapstructure:"REDIS_ENABLED"`
	Host      string        `mapstructure:"REDIS_HOST"`
	Port      int           `mapstructure:"REDIS_PORT"`
	Password  string        `mapstructure:"REDIS_PASSWORD"`
	DB        int           `mapstructure:"REDIS_DB"`
	PoolSize  int           `mapstructure:"REDIS_POOL_SIZE" validate:"gt=0"`
	CacheTTL  time.Duration `mapstructure:"CACHE_TTL" validate:"gt=0"`
	KeyPrefix string        `mapstructure:"REDIS_KEY_PREFIX" validate:"required"`
}

// DSN returns the PostgreSQL connection string.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// Addr returns the Redis address in host:port format.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ServerAddr returns the HTTP listen address in host:port format.
func (s *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from environment variables and an optional .env
// file in the working directory, then validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	// ── Defaults ────────────────────────────────────────
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "5s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "120s")

	v.SetDefault("CATALOGUE_SOURCE", SourceFile)
	v.SetDefault("CATALOGUE_FILE", "catalogue.txt")
	v.SetDefault("CATALOGUE_FORMAT", FormatText)
	v.SetDefault("CATALOGUE_GEO_FORMULA", GeoCosines)

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "catalogue")
	v.SetDefault("POSTGRES_PASSWORD", "catalogue_secret")
	v.SetDefault("POSTGRES_DB", "catalogue_db")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("POSTGRES_MAX_CONNS", 4)
	v.SetDefault("POSTGRES_MIN_CONNS", 0)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 20)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("REDIS_KEY_PREFIX", "catalogue")

	// A missing .env is fine; plain environment variables are used instead.
	_ = v.ReadInConfig()

	cfg := &Config{}

	// ── Server ──────────────────────────────────────────
	cfg.Server = ServerConfig{
		Host:         v.GetString("SERVER_HOST"),
		Port:         v.GetInt("SERVER_PORT"),
		ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
		WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		IdleTimeout:  v.GetDuration("SERVER_IDLE_TIMEOUT"),
	}

	// ── Catalogue ───────────────────────────────────────
	cfg.Catalogue = CatalogueConfig{
		Source:     v.GetString("CATALOGUE_SOURCE"),
		File:       v.GetString("CATALOGUE_FILE"),
		Format:     v.GetString("CATALOGUE_FORMAT"),
		GeoFormula: v.GetString("CATALOGUE_GEO_FORMULA"),
	}

	// ── Postgres ────────────────────────────────────────
	cfg.Postgres = PostgresConfig{
		Host:     v.GetString("POSTGRES_HOST"),
		Port:     v.GetInt("POSTGRES_PORT"),
		User:     v.GetString("POSTGRES_USER"),
		Password: v.GetString("POSTGRES_PASSWORD"),
		DBName:   v.GetString("POSTGRES_DB"),
		SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		MaxConns: v.GetInt32("POSTGRES_MAX_CONNS"),
		MinConns: v.GetInt32("POSTGRES_MIN_CONNS"),
	}

	// ── Redis ───────────────────────────────────────────
	cfg.Redis = RedisConfig{
		Enabled:   v.GetBool("REDIS_ENABLED"),
		Host:      v.GetString("REDIS_HOST"),
		Port:      v.GetInt("REDIS_PORT"),
		Password:  v.GetString("REDIS_PASSWORD"),
		DB:        v.GetInt("REDIS_DB"),
		PoolSize:  v.GetInt("REDIS_POOL_SIZE"),
		CacheTTL:  v.GetDuration("CACHE_TTL"),
		KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
