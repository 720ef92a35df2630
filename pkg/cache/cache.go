// Package cache provides a small string cache with TTL expiry, backed by
// either process memory or redis. The news client uses it to avoid
// re-fetching league feeds on every chat turn.
package cache

import (
	"context"
	"time"
)

// Store is the cache contract shared by the memory and redis backends
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
