package room

import (
	"errors"

	"github.com/iudanet/notesync/pkg/api"
)

var (
	// ErrForbidden is returned when a peer asks for an action its role does not allow.
	ErrForbidden = errors.New("forbidden")

	// ErrRoomNotFound is returned when an observer joins a room that no owner has opened.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomEnded is returned for any operation on a room whose owner ended the session.
	ErrRoomEnded = errors.New("room ended")

	// ErrNotMember is returned when the connection is not attached to the room.
	ErrNotMember = errors.New("connection is not a member of the room")

	// ErrBadRequest is returned for malformed or unexpected messages.
	ErrBadRequest = errors.New("bad request")

	// ErrStateNotFound is returned by SnapshotStore.Load for unknown rooms.
	ErrStateNotFound = errors.New("room state not found")
)

// errRoomClosed означает, что комната выгружается из памяти; Join повторяет попытку
var errRoomClosed = errors.New("room closed")

// ErrorCode maps an error to the code sent in an error message.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrForbidden):
		return api.CodeForbidden
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrRoomEnded):
		return api.CodeRoomNotFound
	default:
		return api.CodeBadRequest
	}
}
