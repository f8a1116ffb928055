package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryResolutionCache implements ResolutionCache with a local map.
// Suitable for single-instance deployments and tests; entries expire lazily
// on read.
type InMemoryResolutionCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	resolvedAt time.Time
	expiresAt  time.Time
}

// NewInMemoryResolutionCache creates an empty in-memory cache.
func NewInMemoryResolutionCache() *InMemoryResolutionCache {
	return &InMemoryResolutionCache{
		entries: make(map[string]inMemoryEntry),
	}
}

// MarkResolved records the checkpoint time for a BBL with a TTL. A
// non-positive TTL means the entry never expires.
func (c *InMemoryResolutionCache) MarkResolved(_ context.Context, bbl string, resolvedAt time.Time, ttl time.Duration) error {
	entry := inMemoryEntry{resolvedAt: resolvedAt}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[bbl] = entry
	c.mu.Unlock()
	return nil
}

// LastResolved returns the cached checkpoint time, or nil on a miss.
func (c *InMemoryResolutionCache) LastResolved(_ context.Context, bbl string) (*time.Time, error) {
	c.mu.RLock()
	entry, ok := c.entries[bbl]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, bbl)
		c.mu.Unlock()
		return nil, nil
	}

	ts := entry.resolvedAt
	return &ts, nil
}

// Close is a no-op for the in-memory cache.
func (c *InMemoryResolutionCache) Close() error {
	return nil
}
