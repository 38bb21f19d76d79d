package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"devevent/internal/domain"
)

type bcryptChecker struct {
	hash []byte
}

// NewBcryptChecker returns a CredentialChecker for a bcrypt hash such as one
// produced by HashPassword.
func NewBcryptChecker(hash string) domain.CredentialChecker {
	return &bcryptChecker{hash: []byte(hash)}
}

func (c *bcryptChecker) Check(password string) error {
	if err := bcrypt.CompareHashAndPassword(c.hash, []byte(password)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type plainChecker struct {
	password []byte
}

// NewPlainChecker returns a CredentialChecker comparing against a plaintext
// password in constant time.
func NewPlainChecker(password string) domain.CredentialChecker {
	return &plainChecker{password: []byte(password)}
}

func (c *plainChecker) Check(password string) error {
	if len(c.password) == 0 || subtle.ConstantTimeCompare(c.password, []byte(password)) != 1 {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// NewCredentialChecker prefers the bcrypt hash when one is configured.
func NewCredentialChecker(password, hash string) domain.CredentialChecker {
	if hash != "" {
		return NewBcryptChecker(hash)
	}
	return NewPlainChecker(password)
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
