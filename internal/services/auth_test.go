package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"devevent/internal/adapters/auth"
	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	issuedTTL time.Duration
	issueErr  error
}

func (f *fakeTokens) Issue(ttl time.Duration) (string, error) {
	f.issuedTTL = ttl
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "signed-token", nil
}

func (f *fakeTokens) Verify(token string) (*domain.AdminClaims, error) {
	if token != "signed-token" {
		return nil, domain.ErrUnauthorized
	}
	return &domain.AdminClaims{Admin: true}, nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "admin", password: "s3cret"},
		{name: "wrong password", username: "admin", password: "nope", wantErr: domain.ErrInvalidCredentials},
		{name: "wrong username", username: "root", password: "s3cret", wantErr: domain.ErrInvalidCredentials},
		{name: "empty", wantErr: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &fakeTokens{}
			svc := NewAuthService("admin", auth.NewPlainChecker("s3cret"), tokens)

			token, err := svc.Login(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "signed-token", token)
			assert.Equal(t, domain.SessionTTL, tokens.issuedTTL)
		})
	}
}

func TestAuthService_LoginWithHash(t *testing.T) {
	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)
	svc := NewAuthService("admin", auth.NewCredentialChecker("ignored", hash), &fakeTokens{})

	_, err = svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "admin", "ignored")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_IssueFailure(t *testing.T) {
	svc := NewAuthService("admin", auth.NewPlainChecker("s3cret"), &fakeTokens{issueErr: errors.New("no key")})

	_, err := svc.Login(context.Background(), "admin", "s3cret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_RoundTripWithJWT(t *testing.T) {
	svc := NewAuthService("admin", auth.NewPlainChecker("s3cret"), auth.NewJWTSessionTokens("test-secret"))

	token, err := svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
	assert.WithinDuration(t, claims.IssuedAt.Add(domain.SessionTTL), claims.ExpiresAt, time.Second)

	_, err = svc.Verify(token + "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
