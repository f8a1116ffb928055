// Package cache holds the processed-check cache: a fast answer to "when was
// this BBL last resolved" that the status endpoint consults before touching
// the metrics store.
package cache

import (
	"context"
	"time"
)

// ResolutionCache records when a building was last checkpointed. A nil
// timestamp with a nil error is a cache miss; callers fall through to the
// metrics store.
type ResolutionCache interface {
	// MarkResolved records the checkpoint time for a BBL with a TTL.
	MarkResolved(ctx context.Context, bbl string, resolvedAt time.Time, ttl time.Duration) error

	// LastResolved returns the cached checkpoint time, or nil on a miss.
	LastResolved(ctx context.Context, bbl string) (*time.Time, error)

	// Close releases any underlying connection.
	Close() error
}
