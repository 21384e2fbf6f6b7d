package sessionRepo

import "equiptrack/models"

// SessionRepository defines methods for session data access.
type SessionRepository interface {
	// GetByToken retrieves a session by its token.
	// Returns (nil, nil) when no such session exists.
	GetByToken(token string) (*models.Session, error)
	// Create inserts a new session record.
	Create(session *models.Session) error
	// DeleteByToken removes the session with the given token. Deleting an
	// absent token is not an error.
	DeleteByToken(token string) error
}
