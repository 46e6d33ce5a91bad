// Package redis defines the cache service interface.
// The service layer depends on this interface rather than the concrete
// Redis client, keeping the session store swappable in tests.
package redis

import (
	"context"
	"time"
)

// CacheService is the synchronous cache surface. Its main consumer is the
// auth service, which keeps the active refresh-token id per user.
type CacheService interface {
	// Set stores a key with a ttl.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get returns the value for key, or "" and nil when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Delete removes a key if present.
	Delete(ctx context.Context, key string) error
}

// AsyncCacheService adds non-blocking task submission on top of
// CacheService, for cache maintenance off the request path.
type AsyncCacheService interface {
	CacheService
	// SubmitTask queues an action on the worker pool; when the queue is
	// full the action runs synchronously instead of being dropped.
	SubmitTask(action func())
}
