// Package cache provides pluggable storage for raw API response bodies.
//
// The cache is strictly opt-in: the client defaults to NullCache, so every
// traversal sees the live API unless a caller wires in a real backend.
// Backends store opaque byte slices under string keys with an optional TTL.
//
// Available backends:
//   - NullCache: no-op, caching disabled (the default)
//   - FileCache: JSON entries under a hash-sharded directory tree
//   - RedisCache: namespaced keys in a Redis instance
package cache

import (
	"context"
	"time"
)

// Cache stores raw response bodies keyed by request identity.
//
// Get reports a miss with (nil, false, nil); errors are reserved for
// backend failures, never for absent keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Flusher is implemented by backends that can drop all of their entries.
// Callers discover it with a type assertion.
type Flusher interface {
	Flush(ctx context.Context) error
}
