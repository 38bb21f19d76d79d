package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"devevent/internal/domain"
)

const sessionSubject = "admin"

type sessionClaims struct {
	jwt.RegisteredClaims
	Admin bool `json:"admin"`
}

type jwtSessionTokens struct {
	secret []byte
	now    func() time.Time
}

// NewJWTSessionTokens returns SessionTokens that sign HS256 JWTs with secret.
func NewJWTSessionTokens(secret string) domain.SessionTokens {
	return &jwtSessionTokens{secret: []byte(secret), now: time.Now}
}

func (t *jwtSessionTokens) Issue(ttl time.Duration) (string, error) {
	now := t.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Admin: true,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (t *jwtSessionTokens) Verify(token string) (*domain.AdminClaims, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	if !claims.Admin {
		return nil, domain.ErrUnauthorized
	}
	out := &domain.AdminClaims{Admin: true}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
