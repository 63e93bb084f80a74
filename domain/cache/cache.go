// Package cache provides the domain interface for tool result caching.
package cache

import (
	"context"
	"time"
)

// Cache stores marshaled tool observations keyed by tool name and argument
// digest. Implementations may be in-memory or Redis-backed.
type Cache interface {
	// Get retrieves a cached value by key.
	// Returns the value, whether it was found, and any error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given key and options.
	Set(ctx context.Context, key string, value []byte, opts SetOptions) error

	// Delete removes a cached entry by key.
	Delete(ctx context.Context, key string) error
}

// SetOptions configures how a value is stored in the cache.
type SetOptions struct {
	// TTL is the time-to-live for the cached entry. Zero means no expiration.
	TTL time.Duration
}

// Stats provides cache hit/miss counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Size    int64
	MaxSize int64
}

// StatsProvider is an optional interface for caches that track statistics.
type StatsProvider interface {
	Stats() Stats
}
