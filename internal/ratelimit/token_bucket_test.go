// internal/ratelimit/token_bucket_test.go
package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketAllowsInitialBurst(t *testing.T) {
	tb := NewTokenBucket(10, 0.5)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	tb.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		assert.True(t, tb.Allow("client"), "burst request %d should be admitted", i+1)
	}
	assert.False(t, tb.Allow("client"), "an empty bucket denies")
}

func TestTokenBucketRefillsOverTime(t *testing.T) {
	tb := NewTokenBucket(10, 0.5)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	tb.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		tb.Allow("client")
	}
	assert.False(t, tb.Allow("client"))

	// One second refills half a token, still not enough.
	now = now.Add(time.Second)
	assert.False(t, tb.Allow("client"))

	// Another second completes the token.
	now = now.Add(time.Second)
	assert.True(t, tb.Allow("client"))
	assert.False(t, tb.Allow("client"), "the refilled token is spent")
}

func TestTokenBucketCapsRefill(t *testing.T) {
	tb := NewTokenBucket(10, 0.5)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	tb.now = func() time.Time { return now }

	tb.Allow("client")

	// A long idle period refills to capacity and no further.
	now = now.Add(time.Hour)
	for i := 0; i < 10; i++ {
		assert.True(t, tb.Allow("client"), "request %d after refill", i+1)
	}
	assert.False(t, tb.Allow("client"))
}

func TestTokenBucketIsolatesKeys(t *testing.T) {
	tb := NewTokenBucket(1, 0.5)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	tb.now = func() time.Time { return now }

	assert.True(t, tb.Allow("a"))
	assert.False(t, tb.Allow("a"))
	assert.True(t, tb.Allow("b"))
}
