package cache

import (
	"context"
	"time"
)

// Cache defines the interface for TTL key-value storage. The session
// service stores bearer tokens through this abstraction so a single
// instance can run on memory and a multi-instance deployment on Redis
// without changing business logic.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found
	// or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// CacheError is a sentinel error type for cache failures.
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"
)
