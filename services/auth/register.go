package auth

import (
	"fmt"

	"equiptrack/models"
	"equiptrack/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account behind the invite-code gate and issues a session.
func (s *DefaultAuthService) Register(username, password, inviteCode string) (*AuthResponse, error) {
	if username == "" || password == "" || inviteCode == "" {
		return nil, ErrMissingField
	}

	// An unset invite code keeps registration closed; it never becomes a bypass.
	if s.InviteCode == "" || inviteCode != s.InviteCode {
		return nil, ErrInvalidInvite
	}

	existing, err := s.Repo.GetByUsername(username)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check username", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashed),
	}
	if err := s.Repo.Create(user); err != nil {
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, err
	}

	session, err := s.Sessions.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:        user.ID,
		Username:  user.Username,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// UsernameExists reports whether a username is taken.
func (s *DefaultAuthService) UsernameExists(username string) (bool, error) {
	if username == "" {
		return false, ErrMissingField
	}
	user, err := s.Repo.GetByUsername(username)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
