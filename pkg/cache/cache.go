// Package cache stores raw font bytes between runs.
//
// Fetching the configured font is the only network access the engine makes.
// A [Cache] lets the CLI and the HTTP host skip that fetch on later process
// starts. Three backends are provided:
//
//   - [FileCache]: one JSON entry per key under a local directory (CLI)
//   - [RedisCache]: a shared Redis instance (multi-replica hosts)
//   - [NullCache]: stores nothing
//
// Keys come from a [Keyer] so that callers never build key strings by hand.
// Export artifacts are never cached.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); the error is reserved for backend
// failures. A ttl of 0 means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
