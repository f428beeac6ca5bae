package storage

import "errors"

// Common storage errors
var (
	// ErrEntryNotFound indicates that entity was not found in storage
	ErrEntryNotFound = errors.New("entry not found")

	// ErrInvalidMutation indicates that mutation is malformed and can never be applied
	ErrInvalidMutation = errors.New("invalid mutation")
)
