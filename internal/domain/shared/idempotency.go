package shared

import (
	"context"
	"time"
)

// IdempotencyStore deduplicates client requests by an opaque key.
// Reserve returns false when the key was already claimed within the TTL.
type IdempotencyStore interface {
	// Reserve atomically claims the key. The first caller wins.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release frees a claimed key, allowing the request to be retried.
	Release(ctx context.Context, key string) error
}
