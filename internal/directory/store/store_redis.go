package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisAccessPointKeyPrefix = "esb:accesspoint:"

// RedisCache shares resolved access points between instances with TTL
// eviction.
type RedisCache struct {
	client   *redis.Client
	cacheTTL time.Duration
}

// NewRedisCache constructs a Redis-backed resolution cache.
func NewRedisCache(client *redis.Client, cacheTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   client,
		cacheTTL: cacheTTL,
	}
}

// Get returns ErrNotFound on a miss; Redis errors are wrapped.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, redisAccessPointKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("find access point cache: %w", err)
	}
	return value, nil
}

// Set writes an access point with TTL. Empty access points are not cached.
func (c *RedisCache) Set(ctx context.Context, key, accessPoint string) error {
	if accessPoint == "" {
		return nil
	}
	if err := c.client.Set(ctx, redisAccessPointKeyPrefix+key, accessPoint, c.cacheTTL).Err(); err != nil {
		return fmt.Errorf("save access point cache: %w", err)
	}
	return nil
}

// Clear deletes every access point key using SCAN so Redis is never blocked.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, redisAccessPointKeyPrefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("clear access point cache: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan access point cache: %w", err)
	}
	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("clear access point cache: %w", err)
		}
	}
	return nil
}
