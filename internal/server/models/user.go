// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. Password holds the credential digest, never plaintext.
type User struct {
	ID        int64
	Email     string
	Password  string
	CreatedAt time.Time
}
