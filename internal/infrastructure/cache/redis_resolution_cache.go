package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/buildingcarbon/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisResolutionCache implements ResolutionCache on Redis. Suitable for
// distributed deployments where several instances answer status queries for
// the same buildings.
type RedisResolutionCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisResolutionCache creates a Redis-backed cache and verifies the
// connection before returning.
func NewRedisResolutionCache(cfg config.RedisConfig) (*RedisResolutionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisResolutionCacheWithClient(client, ""), nil
}

// NewRedisResolutionCacheWithClient creates a cache around an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisResolutionCacheWithClient(client *redis.Client, keyPrefix string) *RedisResolutionCache {
	if keyPrefix == "" {
		keyPrefix = "building:resolved:"
	}
	return &RedisResolutionCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// MarkResolved records the checkpoint time for a BBL with a TTL.
func (c *RedisResolutionCache) MarkResolved(ctx context.Context, bbl string, resolvedAt time.Time, ttl time.Duration) error {
	key := c.keyPrefix + bbl
	if err := c.client.Set(ctx, key, resolvedAt.UTC().Format(time.RFC3339Nano), ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark building as resolved: %w", err)
	}
	return nil
}

// LastResolved returns the cached checkpoint time, or nil on a miss.
func (c *RedisResolutionCache) LastResolved(ctx context.Context, bbl string) (*time.Time, error) {
	key := c.keyPrefix + bbl

	raw, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resolution timestamp: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		// Corrupt entry: treat as a miss so the caller re-populates it.
		return nil, nil
	}
	return &ts, nil
}

// Close closes the Redis client.
func (c *RedisResolutionCache) Close() error {
	return c.client.Close()
}
