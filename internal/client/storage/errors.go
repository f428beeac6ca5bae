package storage

import "errors"

// Common client storage errors
var (
	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrItemNotFound indicates that a queue item does not exist
	ErrItemNotFound = errors.New("queue item not found")

	// ErrLocked indicates that an encrypted record was read without a key
	ErrLocked = errors.New("storage is locked: passphrase required")

	// ErrWrongPassphrase indicates that the passphrase does not match the stored key fingerprint
	ErrWrongPassphrase = errors.New("wrong passphrase")
)

// ErrAuthNotFound indicates that no authentication data exists
var ErrAuthNotFound = errors.New("authentication data not found")
