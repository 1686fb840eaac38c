// internal/ratelimit/fixed_window.go
package ratelimit

import (
	"context"
	"time"
)

// FixedWindow counts requests per client key inside a rolling-start
// window. The first request of a key opens its window; once the count
// passes the limit every further request is denied until the window
// expires. On a store failure the limiter denies, never bypasses.
type FixedWindow struct {
	store  Store
	name   string
	limit  int64
	window time.Duration
}

func NewFixedWindow(store Store, name string, limit int64, window time.Duration) *FixedWindow {
	return &FixedWindow{
		store:  store,
		name:   name,
		limit:  limit,
		window: window,
	}
}

// Name identifies the limiter in logs and metrics.
func (fw *FixedWindow) Name() string {
	return fw.name
}

// Allow records one request for key and reports whether it is within the
// limit. Clients without a resolvable address share a single "unknown"
// key so they cannot dodge throttling by hiding their origin.
func (fw *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	if key == "" {
		key = "unknown"
	}
	count, err := fw.store.Incr(ctx, fw.name+":"+key, fw.window)
	if err != nil {
		return false, err
	}
	return count <= fw.limit, nil
}

// RetryAfter reports how long a denied client must wait before its
// window resets.
func (fw *FixedWindow) RetryAfter(ctx context.Context, key string) (time.Duration, error) {
	if key == "" {
		key = "unknown"
	}
	return fw.store.TTL(ctx, fw.name+":"+key)
}
