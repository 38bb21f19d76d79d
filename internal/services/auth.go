package services

import (
	"context"
	"crypto/subtle"

	"devevent/internal/domain"
)

type authService struct {
	username string
	checker  domain.CredentialChecker
	tokens   domain.SessionTokens
}

// NewAuthService creates an AuthService for the single configured admin.
func NewAuthService(username string, checker domain.CredentialChecker, tokens domain.SessionTokens) domain.AuthService {
	return &authService{
		username: username,
		checker:  checker,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	// Both comparisons always run so a wrong username takes as long as a wrong password.
	userOK := s.username != "" && subtle.ConstantTimeCompare([]byte(s.username), []byte(username)) == 1
	passErr := s.checker.Check(password)
	if !userOK || passErr != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.tokens.Issue(domain.SessionTTL)
}

func (s *authService) Verify(token string) (*domain.AdminClaims, error) {
	return s.tokens.Verify(token)
}
