package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Classification of remote failures. Callers use errors.Is.
var (
	// ErrOffline means the server could not be reached at all.
	ErrOffline = errors.New("server unreachable")
	// ErrTransient means the server answered but the request may succeed later.
	ErrTransient = errors.New("transient server error")
	// ErrPermanent means the server rejected the request; retrying will not help.
	ErrPermanent = errors.New("request rejected by server")
)

// StatusError is a non-2xx response.
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code onto ErrTransient or ErrPermanent.
func (e *StatusError) Unwrap() error {
	if IsTransientStatus(e.StatusCode) {
		return ErrTransient
	}
	return ErrPermanent
}

// IsTransientStatus reports whether a response status is worth retrying.
func IsTransientStatus(code int) bool {
	switch {
	case code >= 500:
		return true
	case code == http.StatusTooManyRequests, code == http.StatusRequestTimeout:
		return true
	default:
		return false
	}
}
