package auth

import "errors"

var (
	// ErrMissingField indicates a required credential field was not supplied.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidInvite indicates the invite code did not match the configured secret.
	ErrInvalidInvite = errors.New("invalid invite code")
	// ErrUsernameTaken indicates a user with that username already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so responses cannot be used to enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
