package auth

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinAdminPasswordLength is the shortest password hash-password accepts.
const MinAdminPasswordLength = 8

var (
	ErrAdminPasswordTooShort = fmt.Errorf("admin password must be at least %d characters", MinAdminPasswordLength)
	ErrAdminPasswordTooLong  = errors.New("admin password must not exceed 72 bytes")
	errPasswordMismatch      = errors.New("password verification failed")
)

// BcryptPasswordHasher hashes and checks the administrator password used by
// the reservation endpoints.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher falls back to bcrypt.DefaultCost for an out of range cost.
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	switch {
	case utf8.RuneCountInString(password) < MinAdminPasswordLength:
		return "", ErrAdminPasswordTooShort
	case len(password) > 72:
		return "", ErrAdminPasswordTooLong
	}

	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash admin password: %w", err)
	}
	return string(out), nil
}

// Verify returns the same error for a wrong password and a malformed hash.
func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return errPasswordMismatch
	}
	return nil
}

// CheckHash reports whether a configured hash is a usable bcrypt hash. The
// server calls it at startup so a pasted-in typo is caught before the first
// admin request.
func CheckHash(hash string) error {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return fmt.Errorf("admin.password_hash is not a bcrypt hash: %w", err)
	}
	if cost < bcrypt.DefaultCost {
		return fmt.Errorf("admin.password_hash uses cost %d, below the minimum of %d", cost, bcrypt.DefaultCost)
	}
	return nil
}
