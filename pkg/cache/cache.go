package cache

import (
	"context"
	"time"
)

// Cache is a minimal key/value cache. Get reports whether the key was
// present so callers can tell a miss from a zero value.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}
