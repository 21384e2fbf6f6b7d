package userRepo

import "equiptrack/models"

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByUsername retrieves a user by username (case-sensitive exact match).
	// Returns (nil, nil) when no such user exists.
	GetByUsername(username string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
}
