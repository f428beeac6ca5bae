package storage

import (
	"context"
)

//go:generate moq -out auth_mock.go . AuthStorage

// AuthStorage keeps the bearer token the client presents to the server.
type AuthStorage interface {
	// SaveAuth stores credentials, replacing previous ones
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored credentials
	// Returns ErrAuthNotFound if nothing is stored
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored credentials (logout)
	DeleteAuth(ctx context.Context) error
}

// AuthData represents authentication information in storage
type AuthData struct {
	ServerURL   string `json:"server_url"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // ExpiresAt unix seconds, 0 если токен бессрочный
}
