package httpapi

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

type ctxKey string

const (
	userKey  ctxKey = "user"
	tokenKey ctxKey = "token"
)

func withUser(ctx context.Context, u *models.User, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, u)
	return context.WithValue(ctx, tokenKey, token)
}

// currentUser returns the user loaded by the auth middleware.
func currentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

func userFrom(ctx context.Context) int64 {
	if u := currentUser(ctx); u != nil {
		return u.ID
	}
	return 0
}

func tokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}
