package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryOptions configure the in-process backend.
type MemoryOptions struct {
	// CleanupInterval is how often expired items are purged.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// MemoryCache keeps entries in process memory; they are lost on restart.
type MemoryCache struct {
	c      *gocache.Cache
	closed atomic.Bool
}

func NewMemoryCache(opts MemoryOptions) *MemoryCache {
	cleanup := opts.CleanupInterval
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &MemoryCache{c: gocache.New(gocache.NoExpiration, cleanup)}
}

func (m *MemoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := m.check(ctx); err != nil {
		return err
	}
	m.c.Set(key, value, ttl)
	return nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	if err := m.check(ctx); err != nil {
		return "", err
	}
	v, ok := m.c.Get(key)
	if !ok {
		return "", common.ErrorNotFound
	}
	return v.(string), nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := m.check(ctx); err != nil {
		return err
	}
	m.c.Delete(key)
	return nil
}

func (m *MemoryCache) Ping(ctx context.Context) error {
	return m.check(ctx)
}

func (m *MemoryCache) Close() error {
	if m.closed.CompareAndSwap(false, true) {
		m.c.Flush()
	}
	return nil
}

func (m *MemoryCache) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.closed.Load() {
		return wrap(ErrClosed)
	}
	return nil
}
