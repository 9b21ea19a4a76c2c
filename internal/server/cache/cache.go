// Package cache provides the expiring key-value store that backs sessions.
//
// Two backends exist: "badger", a persistent store that survives restarts,
// and "memory", a process-local map with expiry.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by operations on a cache that has been closed.
var ErrClosed = errors.New("cache is closed")

// Cache is an expiring string store. Get reports common.ErrorNotFound for
// keys that are absent or expired.
type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
