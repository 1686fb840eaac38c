// internal/ratelimit/store.go
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store is the counter backend a fixed-window limiter runs against. The
// backend is injected so deployments can share counters through Redis
// while tests and single-node setups run in memory.
type Store interface {
	// Incr increments the counter at key and returns the new value. The
	// first increment of a key arms its expiry at ttl from now.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// TTL reports the remaining lifetime of key, or zero when the key
	// does not exist.
	TTL(ctx context.Context, key string) (time.Duration, error)
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

// MemoryStore is a process-local Store guarded by a mutex. Expired
// entries are swept opportunistically on write.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ops     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *MemoryStore) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ops++
	if s.ops%256 == 0 {
		s.sweep(now)
	}

	entry, ok := s.entries[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &memoryEntry{expiresAt: now.Add(ttl)}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, nil
}

func (s *MemoryStore) TTL(_ context.Context, key string) (time.Duration, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || now.After(entry.expiresAt) {
		return 0, nil
	}
	return entry.expiresAt.Sub(now), nil
}

// sweep drops expired entries. Callers hold the mutex.
func (s *MemoryStore) sweep(now time.Time) {
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
