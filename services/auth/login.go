package auth

import (
	"equiptrack/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies credentials and issues a session. An unknown username and a
// wrong password produce the same ErrInvalidCredentials.
func (s *DefaultAuthService) Login(username, password string) (*AuthResponse, error) {
	if username == "" || password == "" {
		return nil, ErrMissingField
	}

	userRec, err := s.Repo.GetByUsername(username)
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, err
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	session, err := s.Sessions.Issue(userRec.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:        userRec.ID,
		Username:  userRec.Username,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout revokes the session for the given token. Idempotent.
func (s *DefaultAuthService) Logout(token string) error {
	return s.Sessions.Revoke(token)
}
