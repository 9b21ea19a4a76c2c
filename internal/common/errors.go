// Package common defines shared constants and sentinel errors used across
// the server and client layers of the files manager. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStorage marks failures of the record store, the cache or the blob
	// backend. Drivers' errors are wrapped alongside it.
	ErrStorage = errors.New("storage error")

	// Registration validation errors.
	ErrMissingEmail    = errors.New("missing email")
	ErrMissingPassword = errors.New("missing password")

	// Entry validation errors, in the order they are checked.
	ErrMissingName      = errors.New("missing name")
	ErrMissingType      = errors.New("missing type")
	ErrParentNotFound   = errors.New("parent not found")
	ErrParentNotAFolder = errors.New("parent is not a folder")
	ErrMissingData      = errors.New("missing data")
	ErrInvalidData      = errors.New("invalid data")
)

// Kind groups errors by who is at fault and how they surface to clients.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuth
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

var validationErrors = []error{
	ErrMissingEmail,
	ErrMissingPassword,
	ErrMissingName,
	ErrMissingType,
	ErrParentNotFound,
	ErrParentNotAFolder,
	ErrMissingData,
	ErrInvalidData,
}

// KindOf classifies err. Unknown errors are reported as KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrStorage):
		return KindStorage
	case errors.Is(err, ErrorUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return KindAuth
	case errors.Is(err, ErrAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return KindValidation
		}
	}
	return KindInternal
}
