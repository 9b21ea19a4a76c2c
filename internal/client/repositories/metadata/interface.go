// Package metadata keeps small named values of the CLI between runs, such as
// the current session token and the account it belongs to.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyServer = "server"
	KeyEmail  = "email"
	KeyToken  = "token"
)

type Repository interface {
	// Get reports ok=false when key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
