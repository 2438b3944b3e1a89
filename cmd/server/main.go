package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiva/transit-catalogue/config"
	"github.com/shiva/transit-catalogue/internal/catalogue"
	"github.com/shiva/transit-catalogue/internal/handler"
	"github.com/shiva/transit-catalogue/internal/middleware"
	"github.com/shiva/transit-catalogue/internal/model"
	"github.com/shiva/transit-catalogue/internal/reader"
	"github.com/shiva/transit-catalogue/internal/repository"
	"github.com/shiva/transit-catalogue/internal/service"
	"github.com/shiva/transit-catalogue/pkg/cache"
	"github.com/shiva/transit-catalogue/pkg/db"
	"github.com/shiva/transit-catalogue/pkg/geo"
)

func main() {
	// ── Load configuration ──────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	checks := map[string]handler.HealthCheck{}

	// ── Build the batch ─────────────────────────────────
	var batch *model.Batch
	switch cfg.Catalogue.Source {
	case config.SourcePostgres:
		pgPool, err := db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			log.Fatalf("failed to connect to PostgreSQL: %v", err)
		}
		defer pgPool.Close()
		log.Println("✓ PostgreSQL connected")

		batch, err = repository.NewDefinitionRepository(pgPool).LoadBatch(ctx)
		if err != nil {
			log.Fatalf("failed to read definitions: %v", err)
		}
		if err := reader.ValidateBatch(batch); err != nil {
			log.Fatalf("invalid definitions in PostgreSQL: %v", err)
		}
		checks["postgres"] = func(ctx context.Context) error { return db.HealthCheck(ctx, pgPool) }
	default:
		batch, err = reader.ReadBatchFile(cfg.Catalogue.File, cfg.Catalogue.Format)
		if err != nil {
			log.Fatalf("failed to read batch: %v", err)
		}
	}

	// ── Load the catalogue ──────────────────────────────
	cat := catalogue.New(geoFunc(cfg.Catalogue.GeoFormula))
	if err := cat.Load(*batch); err != nil {
		log.Fatalf("failed to load catalogue: %v", err)
	}
	version := service.CacheVersion(batch, cfg.Catalogue.GeoFormula)
	stops, buses := cat.Len()
	log.Printf("[catalogue] loaded %d stops, %d buses (version %s)", stops, buses, version)

	// ── Connect to Redis (optional) ─────────────────────
	var statsCache service.StatsCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("✓ Redis connected")

		statsCache = repository.NewStatsCache(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.CacheTTL)
		checks["redis"] = func(ctx context.Context) error { return cache.HealthCheck(ctx, redisClient) }
	}

	// ── Initialize layers ───────────────────────────────
	querySvc := service.NewQueryService(cat, statsCache, version)
	router := handler.NewRouter(querySvc, handler.NewHealthHandler(querySvc, checks))

	h := middleware.Chain(router, middleware.AccessLog("/health"), middleware.Recover, middleware.CORS)

	// ── Start HTTP server ───────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Server.ServerAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⏳ Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}

// geoFunc picks the great-circle formula for geographic route length.
func geoFunc(formula string) catalogue.GeoFunc {
	switch formula {
	case config.GeoHaversine:
		return geo.HaversineM
	case config.GeoCosines, "":
		return geo.GreatCircleM
	default:
		panic(fmt.Sprintf("unknown geo formula %q", formula))
	}
}
