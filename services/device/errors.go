package device

import "errors"

var (
	// ErrMissingField indicates a required device field was not supplied.
	ErrMissingField = errors.New("missing required field")
	// ErrDeviceNotFound indicates no device exists with the given ID.
	ErrDeviceNotFound = errors.New("device not found")
)
