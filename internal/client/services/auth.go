// Package services holds the CLI's use cases on top of the API client and
// the local state database.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/client/client"
	"github.com/dmitrijs2005/filesmanager/internal/client/models"
	"github.com/dmitrijs2005/filesmanager/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
)

// AuthService manages the account and the session the CLI is using.
//
// A successful Login is remembered in the local database so the next run can
// Restore it without asking for the password again.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) error
	Restore(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	server string
}

// NewAuthService binds the service to an API client, the local database and
// the server URL the session is valid for.
func NewAuthService(c client.Client, db *sql.DB, server string) AuthService {
	return &authService{client: c, db: db, server: server}
}

func (a *authService) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	return a.client.Register(ctx, email, string(password))
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyServer, a.server); err != nil {
			return err
		}
		if err := repo.Set(ctx, metadata.KeyEmail, email); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyToken, token)
	})
	if err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

// Restore picks up the session saved by an earlier Login and checks it with
// the server. It returns the account email, or "" when there is nothing to
// restore. A session the server rejects is forgotten.
func (a *authService) Restore(ctx context.Context) (string, error) {
	repo := metadata.NewSQLiteRepository(a.db)

	server, _, err := repo.Get(ctx, metadata.KeyServer)
	if err != nil {
		return "", err
	}
	token, ok, err := repo.Get(ctx, metadata.KeyToken)
	if err != nil {
		return "", err
	}
	if !ok || server != a.server {
		return "", nil
	}

	a.client.SetToken(token)

	u, err := a.client.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.client.SetToken("")
			return "", repo.Delete(ctx, metadata.KeyToken, metadata.KeyEmail)
		}
		return "", err
	}
	return u.Email, nil
}

// Logout ends the session on the server and forgets it locally. An already
// expired session is not an error.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	if err != nil && !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	a.client.SetToken("")

	return metadata.NewSQLiteRepository(a.db).Delete(ctx, metadata.KeyToken, metadata.KeyEmail)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	return a.client.Me(ctx)
}

// Ping succeeds when the server answers and both of its stores are alive.
func (a *authService) Ping(ctx context.Context) error {
	st, err := a.client.Status(ctx)
	if err != nil {
		return err
	}
	if !st.CacheAlive || !st.StoreAlive {
		return fmt.Errorf("%w: cache alive=%t, store alive=%t", client.ErrUnavailable, st.CacheAlive, st.StoreAlive)
	}
	return nil
}
