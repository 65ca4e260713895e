// Package cache provides the storage layer for computed rail plans and
// rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (API servers)
//   - [NullCache]: never stores anything (caching disabled)
//
// # Keys
//
// Keys are produced by a [Keyer] so that every caller derives the same key
// for the same input. [DefaultKeyer] hashes the options that influence the
// result; [ScopedKeyer] adds a namespace prefix.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.PlanKey(cache.Hash(doc), cache.PlanKeyOpts{Version: 1})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLPlan     = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
//
// A miss is reported as (nil, false, nil). Errors are reserved for backend
// failures; callers treat them as a miss.
type Cache interface {
	// Get returns the value stored under key.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
