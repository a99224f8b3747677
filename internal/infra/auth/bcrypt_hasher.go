// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"taskman/config"
	domainerrors "taskman/internal/domain/errors"
	"taskman/internal/domain/service"
)

const minPasswordLength = 6

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePolicy enforces the account password rules: at least six
// characters and the word "password" may not appear anywhere in it.
func (h *bcryptHasher) ValidatePolicy(password string) error {
	if len(password) < minPasswordLength {
		return domainerrors.ErrPasswordTooShort
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return domainerrors.ErrPasswordForbidden
	}

	return nil
}
