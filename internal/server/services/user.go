// Package services contains server-side business logic. This file implements
// UserService, which handles registration and the session lifecycle:
// login, token resolution, the current-user lookup and logout.
package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/credentials"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
)

// SessionStore maps opaque tokens to user ids with a fixed lifetime.
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	Lookup(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
	Ping(ctx context.Context) error
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify Basic credentials and issue a session token
// - Resolve / Me: map a token to its user
// - Logout: revoke a token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      credentials.Hasher
	sessions    SessionStore
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher credentials.Hasher, sessions SessionStore) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		sessions:    sessions,
	}
}

// Register creates a new user. The existence check and the insert share a
// transaction; the unique constraint on email still settles concurrent races.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, common.ErrMissingEmail
	}
	if password == "" {
		return nil, common.ErrMissingPassword
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			return common.ErrAlreadyExists
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		user, err = repo.Create(ctx, email, digest)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks an "Authorization: Basic ..." header value and, on success,
// returns a new session token. Every credential problem is reported as
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, authorization string) (string, error) {
	email, password, ok := parseBasic(authorization)
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.Password) {
		return "", common.ErrInvalidCredentials
	}

	return s.sessions.Create(ctx, user.ID)
}

// Resolve returns the user id bound to token.
func (s *UserService) Resolve(ctx context.Context, token string) (int64, error) {
	return s.sessions.Lookup(ctx, token)
}

// Me returns the user owning token. A token whose user no longer exists is
// treated as unauthorized.
func (s *UserService) Me(ctx context.Context, token string) (*models.User, error) {
	id, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes token. Revoking an unknown token is unauthorized.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if _, err := s.Resolve(ctx, token); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, token)
}

// parseBasic decodes "Basic base64(email:password)". The password may
// itself contain ':'.
func parseBasic(header string) (email, password string, ok bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return "", "", false
	}

	email, password, ok = strings.Cut(string(raw), ":")
	if !ok || email == "" {
		return "", "", false
	}
	return email, password, true
}
