package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/pkg/api"
)

// runLogin stores an access token issued by the server. The signature is
// not checked here: the client has no secret, the server rejects bad tokens.
func (c *Cli) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	token := fs.String("token", "", "access token")
	server := fs.String("server", "", "server URL to remember with the token")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if *token == "" {
		var err error
		if *token, err = c.io.ReadPassword("Access token: "); err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
	}

	auth, err := ParseToken(*token, c.now())
	if err != nil {
		return err
	}
	auth.ServerURL = *server

	if err := c.auth.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}

	c.io.Println("✓ Login successful!")
	c.io.Printf("User: %s (%s)\n", auth.UserName, auth.UserID)
	if auth.ExpiresAt > 0 {
		c.io.Printf("Token expires: %s\n", time.Unix(auth.ExpiresAt, 0).Format(time.RFC3339))
	}
	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.auth.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete auth data: %w", err)
	}
	c.io.Println("✓ Logged out")
	return nil
}

// LoadAuth returns stored credentials that are still valid.
func LoadAuth(ctx context.Context, auth storage.AuthStorage, now time.Time) (*storage.AuthData, error) {
	data, err := auth.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	if data.ExpiresAt > 0 && now.Unix() >= data.ExpiresAt {
		return nil, fmt.Errorf("access token has expired, run 'notesync login' again")
	}
	return data, nil
}

// ParseToken reads the user and expiry from an access token without
// verifying its signature.
func ParseToken(token string, now time.Time) (*storage.AuthData, error) {
	claims := &api.TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed access token: %w", err)
	}
	if claims.Issuer != api.TokenIssuer {
		return nil, fmt.Errorf("token was not issued by notesync")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token carries no user id")
	}

	auth := &storage.AuthData{
		UserID:      claims.UserID,
		UserName:    claims.UserName,
		AccessToken: token,
	}
	if claims.ExpiresAt != nil {
		auth.ExpiresAt = claims.ExpiresAt.Unix()
		if !now.Before(claims.ExpiresAt.Time) {
			return nil, fmt.Errorf("access token has already expired")
		}
	}
	return auth, nil
}
