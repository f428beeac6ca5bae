package collab

import (
	"errors"
	"fmt"

	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/pkg/api"
)

var (
	// ErrHandshakeTimeout is returned when the welcome does not arrive in time.
	ErrHandshakeTimeout = errors.New("room handshake timed out")
	// ErrSessionEnded means the owner ended the session.
	ErrSessionEnded = errors.New("session ended by owner")
	// ErrUnauthorized means the server refused the credentials.
	ErrUnauthorized = errors.New("not authorized to join room")
	// ErrRoomNotFound is returned to observers joining a room nobody opened.
	ErrRoomNotFound = errors.New("room not found")
	// ErrNotConnected is returned for operations that need a live connection.
	ErrNotConnected = errors.New("session is not connected")
	// ErrSessionClosed is returned after Leave or any terminal failure.
	ErrSessionClosed = errors.New("session is closed")
	// ErrAlreadyStarted is returned by a second Connect.
	ErrAlreadyStarted = errors.New("session already started")

	errConnClosed = errors.New("connection closed")
)

// AuthorityError is returned when the local role does not allow an
// operation. Such errors are never retried.
type AuthorityError struct {
	Role models.Role
	Op   string
}

func (e *AuthorityError) Error() string {
	return fmt.Sprintf("role %q is not allowed to %s", e.Role, e.Op)
}

// serverError maps an error message of the relay to a client error.
func serverError(msg *api.RoomMessage, role models.Role, op string) error {
	switch msg.Code {
	case api.CodeUnauthorized:
		return ErrUnauthorized
	case api.CodeRoomNotFound:
		return ErrRoomNotFound
	case api.CodeForbidden:
		return &AuthorityError{Role: role, Op: op}
	default:
		return fmt.Errorf("server error %q: %s", msg.Code, msg.Message)
	}
}

// isTerminal reports whether reconnecting after err is pointless.
func isTerminal(err error) bool {
	var authErr *AuthorityError
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrSessionEnded) ||
		errors.As(err, &authErr)
}
