package api

import "github.com/iudanet/notesync/internal/models"

// RoomMessageType names a message on the room websocket.
type RoomMessageType string

// Client to server.
const (
	MsgJoin       RoomMessageType = "join"
	MsgPresence   RoomMessageType = "presence"
	MsgStorageSet RoomMessageType = "storage_set"
	MsgEvent      RoomMessageType = "event"
	MsgEnd        RoomMessageType = "end"
)

// Server to client. MsgPresence and MsgEvent are relayed in both directions.
const (
	MsgWelcome      RoomMessageType = "welcome"
	MsgStorage      RoomMessageType = "storage"
	MsgPeerLeft     RoomMessageType = "peer_left"
	MsgSessionEnded RoomMessageType = "session_ended"
	MsgError        RoomMessageType = "error"
)

// Error codes carried by MsgError.
const (
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeRoomNotFound = "room_not_found"
	CodeBadRequest   = "bad_request"
)

// RoomMessage is the single envelope used on the room websocket.
// Only the fields relevant to Type are set.
type RoomMessage struct {
	Presence     *models.Presence       `json:"presence,omitempty"`
	Snapshot     *models.Snapshot       `json:"snapshot,omitempty"`
	Document     *models.SharedDocument `json:"document,omitempty"`
	Event        *models.RoomEvent      `json:"event,omitempty"`
	Type         RoomMessageType        `json:"type"`
	Role         models.Role            `json:"role,omitempty"`
	ConnectionID string                 `json:"connectionId,omitempty"`
	Code         string                 `json:"code,omitempty"`
	Message      string                 `json:"message,omitempty"`
	Peers        []models.Presence      `json:"peers,omitempty"`
}
