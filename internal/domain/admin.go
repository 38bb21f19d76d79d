package domain

import (
	"context"
	"time"
)

// SessionTTL is how long an admin session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

// AdminClaims is what a verified admin session token asserts.
type AdminClaims struct {
	Admin     bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenVerifier checks an admin session token.
type TokenVerifier interface {
	// Verify returns ErrUnauthorized for missing, expired, tampered or non-admin tokens.
	Verify(token string) (*AdminClaims, error)
}

// SessionTokens issues and verifies signed admin session tokens. It knows
// nothing about HTTP; cookies are the delivery layer's concern.
type SessionTokens interface {
	TokenVerifier
	Issue(ttl time.Duration) (string, error)
}

// CredentialChecker compares a submitted password against the configured one.
type CredentialChecker interface {
	Check(password string) error
}

// AuthService handles the single shared admin credential.
type AuthService interface {
	// Login returns a session token, or ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
	TokenVerifier
}
