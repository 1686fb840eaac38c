// internal/ratelimit/redis_store.go
package ratelimit

import (
	"context"
	"time"

	"scholarship-portal/internal/common/database"
)

// RedisStore shares limiter counters across instances through Redis.
type RedisStore struct {
	client *database.RedisClient
	prefix string
}

func NewRedisStore(client *database.RedisClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	full := s.prefix + key
	count, err := s.client.Incr(ctx, full)
	if err != nil {
		return 0, err
	}
	// Only the increment that created the key arms the expiry, so the
	// window length is anchored to the first request.
	if count == 1 {
		if err := s.client.PExpire(ctx, full, ttl); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func (s *RedisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := s.client.PTTL(ctx, s.prefix+key)
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
