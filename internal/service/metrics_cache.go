package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// Redis key holding the serialized dashboard snapshot
	RedisMetricsKey = "dashboard:metrics"

	// Timeout for individual Redis operations
	redisCacheTimeout = 2 * time.Second
)

// =============================================================================
// Types
// =============================================================================

// MetricsCache keeps the latest dashboard snapshot in Redis.
//
// The cache is best effort: Redis errors are logged and reported as a miss,
// so a Redis outage only costs recomputation. A nil client disables caching.
type MetricsCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

// NewMetricsCache creates a MetricsCache. redisClient may be nil.
func NewMetricsCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *MetricsCache {
	return &MetricsCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Load decodes the cached snapshot into dest. It reports false on a miss.
func (c *MetricsCache) Load(ctx context.Context, dest interface{}) bool {
	if c == nil || c.redisClient == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := c.redisClient.Get(ctx, RedisMetricsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read metrics cache: %+v", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warnf("Discarding unreadable metrics cache entry: %+v", err)
		return false
	}
	return true
}

// Store caches the snapshot for the configured TTL.
func (c *MetricsCache) Store(ctx context.Context, snapshot interface{}) {
	if c == nil || c.redisClient == nil {
		return
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		c.log.Warnf("Failed to encode metrics snapshot: %+v", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := c.redisClient.Set(ctx, RedisMetricsKey, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write metrics cache: %+v", err)
	}
}

// Invalidate drops the cached snapshot after writes that change revenue or
// occupancy.
func (c *MetricsCache) Invalidate(ctx context.Context) {
	if c == nil || c.redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := c.redisClient.Del(ctx, RedisMetricsKey).Err(); err != nil {
		c.log.Warnf("Failed to invalidate metrics cache: %+v", err)
	}
}
