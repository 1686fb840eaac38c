// internal/ratelimit/token_bucket.go
package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket smooths bursts across all clients of one endpoint. Each
// key holds up to capacity tokens; tokens refill continuously at
// refillRate per second and one is spent per admitted request. A full
// bucket lets a newcomer burst, then the refill rate governs.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	// tokens per second
	refillRate float64
	now        func() time.Time
	ops        int
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

func NewTokenBucket(capacity, refillRate float64) *TokenBucket {
	return &TokenBucket{
		buckets:    make(map[string]*bucket),
		capacity:   capacity,
		refillRate: refillRate,
		now:        time.Now,
	}
}

// Allow spends one token from key's bucket if one is available.
func (tb *TokenBucket) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}
	now := tb.now()

	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.ops++
	if tb.ops%256 == 0 {
		tb.sweep(now)
	}

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, lastFill: now}
		tb.buckets[key] = b
	} else {
		elapsed := now.Sub(b.lastFill).Seconds()
		b.tokens += elapsed * tb.refillRate
		if b.tokens > tb.capacity {
			b.tokens = tb.capacity
		}
		b.lastFill = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops buckets idle long enough to have refilled completely;
// recreating them is equivalent. Callers hold the mutex.
func (tb *TokenBucket) sweep(now time.Time) {
	if tb.refillRate <= 0 {
		return
	}
	idle := time.Duration(tb.capacity/tb.refillRate) * time.Second
	for key, b := range tb.buckets {
		if now.Sub(b.lastFill) > idle {
			delete(tb.buckets, key)
		}
	}
}
