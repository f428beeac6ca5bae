package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/iudanet/notesync/internal/server/room"
	"github.com/iudanet/notesync/internal/validation"
)

// RoomHandler upgrades GET /api/v1/rooms/{roomID}/ws to the room protocol.
type RoomHandler struct {
	hub         *room.Hub
	logger      *slog.Logger
	upgrader    websocket.Upgrader
	joinTimeout time.Duration
}

// NewRoomHandler creates a handler serving rooms of hub.
func NewRoomHandler(hub *room.Hub, logger *slog.Logger, joinTimeout time.Duration) *RoomHandler {
	return &RoomHandler{
		hub:         hub,
		logger:      logger,
		joinTimeout: joinTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Клиенты нативные, Origin не проверяем
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles one websocket connection for its whole lifetime.
func (h *RoomHandler) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized", "")
		return
	}
	userName, _ := GetUserName(r.Context())

	roomID := mux.Vars(r)["roomID"]
	if err := validation.ValidateID("room id", roomID); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error(), "")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("websocket upgrade failed", "room_id", roomID, "error", err)
		return
	}

	room.Serve(r.Context(), h.hub, conn, roomID, room.Identity{UserID: userID, UserName: userName}, h.joinTimeout)
}
