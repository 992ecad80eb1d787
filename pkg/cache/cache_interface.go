package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found is false on a miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value (JSON encoded) with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// Increment atomically adds one to an integer key, creating it at 1
	Increment(ctx context.Context, key string) (int64, error)

	Ping(ctx context.Context) error
}
