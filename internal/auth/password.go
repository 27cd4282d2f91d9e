package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// PasswordHasher hashes credentials with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher; costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash creates a salted bcrypt hash from the given plaintext password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify reports whether password matches the stored hash.
// A malformed hash counts as a mismatch.
func (h *PasswordHasher) Verify(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
