// Package sessions maps opaque tokens to user ids inside the expiring cache.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/cache"
	"github.com/google/uuid"
)

// newToken is a seam for tests.
var newToken = func() string { return uuid.NewString() }

// Store issues, resolves and revokes session tokens. Every token lives for
// the same fixed TTL from the moment it is issued.
type Store struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewStore(c cache.Cache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

func key(token string) string {
	return common.SessionKeyPrefix + token
}

// Create stores a fresh token for userID and returns it.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	token := newToken()
	if err := s.cache.Set(ctx, key(token), strconv.FormatInt(userID, 10), s.ttl); err != nil {
		return "", storageError(err)
	}
	return token, nil
}

// Lookup returns the user id bound to token. Missing, expired or empty
// tokens yield common.ErrorUnauthorized.
func (s *Store) Lookup(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, common.ErrorUnauthorized
	}

	v, err := s.cache.Get(ctx, key(token))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorUnauthorized
		}
		return 0, storageError(err)
	}

	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, common.ErrorUnauthorized
	}
	return id, nil
}

// Delete revokes token.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.cache.Delete(ctx, key(token)); err != nil {
		return storageError(err)
	}
	return nil
}

// Ping reports whether the backing cache answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

func storageError(err error) error {
	if errors.Is(err, common.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: session: %w", common.ErrStorage, err)
}
