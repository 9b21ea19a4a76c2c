package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/filesmanager/internal/common"
)

// BadgerOptions configure the badger backend.
type BadgerOptions struct {
	// Dir holds the database files. Empty means in-memory.
	Dir string `mapstructure:"dir"`
	// GCInterval is how often value log garbage collection runs. Zero disables it.
	GCInterval time.Duration `mapstructure:"gc_interval"`
}

// BadgerCache stores entries with native badger TTLs. Expiry has one second
// resolution; a zero ttl never expires.
type BadgerCache struct {
	db   *badger.DB
	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewBadgerCache opens (or creates) the badger database described by opts.
func NewBadgerCache(opts BadgerOptions) (*BadgerCache, error) {
	bopts := badger.DefaultOptions(opts.Dir).WithLoggingLevel(badger.WARNING)
	if opts.Dir == "" {
		bopts = bopts.WithInMemory(true)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", opts.Dir, err)
	}

	c := &BadgerCache{db: db, stop: make(chan struct{})}

	if opts.GCInterval > 0 && opts.Dir != "" {
		c.wg.Add(1)
		go c.gcLoop(opts.GCInterval)
	}

	return c, nil
}

func (c *BadgerCache) gcLoop(every time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			// ErrNoRewrite just means there was nothing to collect.
			for c.db.RunValueLogGC(0.5) == nil {
			}
		}
	}
}

func (c *BadgerCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), []byte(value))
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	return wrap(err)
}

func (c *BadgerCache) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", wrap(err)
	}
	return string(value), nil
}

func (c *BadgerCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	return wrap(err)
}

func (c *BadgerCache) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.db.IsClosed() {
		return wrap(ErrClosed)
	}
	return nil
}

func (c *BadgerCache) Close() error {
	var err error
	c.once.Do(func() {
		close(c.stop)
		c.wg.Wait()
		err = c.db.Close()
	})
	return err
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: cache: %w", common.ErrStorage, err)
}
