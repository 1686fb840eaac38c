// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"scholarship-portal/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a new Redis client
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &RedisClient{Client: rdb}, nil
}

// Ping tests the Redis connection
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// Incr increments a counter key and returns the new value
func (c *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return c.Client.Incr(ctx, key).Result()
}

// PExpire sets a millisecond TTL on a key
func (c *RedisClient) PExpire(ctx context.Context, key string, ttl time.Duration) error {
	return c.Client.PExpire(ctx, key, ttl).Err()
}

// PTTL returns the remaining millisecond TTL of a key
func (c *RedisClient) PTTL(ctx context.Context, key string) (time.Duration, error) {
	return c.Client.PTTL(ctx, key).Result()
}
