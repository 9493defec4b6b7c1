package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer, so the Redis client can be
// swapped for another implementation (or a mock in tests).
type Cache interface {
	// Get loads key and unmarshals it into dest.
	// found is false on a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set marshals value and stores it under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error

	Close() error
}
