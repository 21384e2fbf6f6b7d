package auth

import (
	"time"

	userRepo "equiptrack/database/repository/user"
)

// AuthService defines business logic for account operations.
type AuthService interface {
	// Register creates an account behind the invite-code gate and issues a session.
	Register(username, password, inviteCode string) (*AuthResponse, error)
	// Login verifies credentials and issues a session.
	Login(username, password string) (*AuthResponse, error)
	// Logout revokes the session for the given token.
	Logout(token string) error
	// UsernameExists reports whether a username is taken. It is an advertised
	// pre-submission helper for the registration form, not a security boundary.
	UsernameExists(username string) (bool, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Repo     userRepo.UserRepository
	Sessions *SessionManager
	// InviteCode is the configured shared secret. Empty keeps registration closed.
	InviteCode string
}

// AuthResponse carries the authenticated identity plus the session the caller
// must place in the client's cookie. The token never appears in a JSON body.
type AuthResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}
