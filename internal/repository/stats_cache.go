package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiva/transit-catalogue/internal/model"
)

// StatsCache stores computed route statistics in Redis.
//
// Every Redis failure is logged and reported as a miss, so the caller simply
// recomputes; the cache never changes an answer.
type StatsCache struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStatsCache creates a cache writing keys under prefix with the given TTL.
func NewStatsCache(client redis.UniversalClient, prefix string, ttl time.Duration) *StatsCache {
	return &StatsCache{redis: client, prefix: prefix, ttl: ttl}
}

// statsKey returns the key for a bus under one batch version:
//
//	catalogue:<version>:bus:<number>
func (c *StatsCache) statsKey(version, bus string) string {
	return c.prefix + ":" + version + ":bus:" + bus
}

// Get returns the cached statistics for a bus, if present.
func (c *StatsCache) Get(ctx context.Context, version, bus string) (*model.RouteStats, bool) {
	raw, err := c.redis.Get(ctx, c.statsKey(version, bus)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[cache] get bus %s: %v", bus, err)
		}
		return nil, false
	}

	var stats model.RouteStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		log.Printf("[cache] decode bus %s: %v", bus, err)
		return nil, false
	}
	return &stats, true
}

// Set stores statistics for stats.Bus. Failures are logged and dropped.
func (c *StatsCache) Set(ctx context.Context, version string, stats *model.RouteStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		log.Printf("[cache] encode bus %s: %v", stats.Bus, err)
		return
	}
	if err := c.redis.Set(ctx, c.statsKey(version, stats.Bus), raw, c.ttl).Err(); err != nil {
		log.Printf("[cache] set bus %s: %v", stats.Bus, err)
	}
}
