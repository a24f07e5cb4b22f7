package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	RedisBackend  = "redis"
	MemoryBackend = "memory"
)

var (
	ErrCacheMiss      = errors.New("cache: key not found")
	ErrUnknownBackend = errors.New("cache: unknown backend")
)

// Cache is the snapshot storage used by client-side stores.
type Cache[V any] interface {
	// Get returns the value or ErrCacheMiss.
	Get(ctx context.Context, key string) (V, error)
	// Set stores value under key, with TTL. Zero ttl = no expiration.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Delete removes the key.
	Delete(ctx context.Context, key string) error
}

// NewCache builds the backend named by backend. Redis requires opts.
func NewCache[V any](backend string, opts *RedisOptions) (Cache[V], error) {
	switch backend {
	case RedisBackend:
		if opts == nil || opts.Addr == "" {
			return nil, fmt.Errorf("%w: redis address is required", ErrUnknownBackend)
		}
		return NewRedisCache[V](opts), nil
	case MemoryBackend, "":
		return NewMemoryCache[V](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
