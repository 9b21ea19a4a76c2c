// Package credentials turns plaintext passwords into stored digests and
// checks candidates against them.
package credentials

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies password digests. Verify never errors: any
// mismatch or malformed digest is simply false.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// New returns the Hasher registered under scheme ("sha1" or "bcrypt").
func New(scheme string) (Hasher, error) {
	switch scheme {
	case "", "sha1":
		return SHA1{}, nil
	case "bcrypt":
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hash scheme %q", scheme)
	}
}

// SHA1 is the unsalted hex digest used by existing user records.
type SHA1 struct{}

func (SHA1) Hash(plaintext string) (string, error) {
	sum := sha1.Sum([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA1) Verify(plaintext, digest string) bool {
	candidate, _ := h.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}

// Bcrypt stores salted, cost-tuned digests.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.Cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (Bcrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
