// Package room is the collaboration relay: it keeps one authoritative
// shared document per room, fans out presence and events, and lets only
// the owner connection mutate the document.
package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/notesync/internal/models"
)

// Identity is the authenticated user behind a connection.
type Identity struct {
	UserID   string
	UserName string
}

// JoinRequest describes a peer joining a room.
type JoinRequest struct {
	Identity Identity
	Role     models.Role
	Presence models.Presence
}

// Hub owns every live room of the relay.
type Hub struct {
	store  SnapshotStore
	logger *slog.Logger
	now    func() time.Time
	rooms  map[string]*Room
	mu     sync.Mutex
}

// NewHub creates a hub persisting room state into store.
func NewHub(store SnapshotStore, logger *slog.Logger) *Hub {
	return &Hub{
		store:  store,
		logger: logger,
		now:    time.Now,
		rooms:  make(map[string]*Room),
	}
}

// Join attaches peer to the room and sends it the welcome message.
//
// An owner opens the room, reusing the persisted epoch and document when
// the same user owned it before. Observers can only join rooms that
// exist in memory or in the store.
func (h *Hub) Join(ctx context.Context, roomID string, peer Peer, req JoinRequest) (*Room, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrBadRequest, req.Role)
	}

	for {
		r, err := h.lookup(ctx, roomID, req)
		if err != nil {
			return nil, err
		}

		err = r.add(peer, req)
		if errors.Is(err, errRoomClosed) {
			// комната выгружается прямо сейчас, берём свежую
			h.evict(r)
			continue
		}
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

// lookup returns the live room, restoring or creating it when needed.
func (h *Hub) lookup(ctx context.Context, roomID string, req JoinRequest) (*Room, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r, ok := h.rooms[roomID]; ok {
		return r, nil
	}

	state, err := h.store.Load(ctx, roomID)
	switch {
	case errors.Is(err, ErrStateNotFound):
		if req.Role != models.RoleOwner {
			return nil, ErrRoomNotFound
		}
		state = &State{
			OwnerUserID: req.Identity.UserID,
			Snapshot: models.Snapshot{
				Epoch:    uuid.New().String(),
				Document: models.SharedDocument{Canvas: make(map[string]models.StrokeDocument)},
			},
		}
		if err := h.store.Save(ctx, roomID, state); err != nil {
			return nil, fmt.Errorf("failed to save new room: %w", err)
		}
		h.logger.Info("room created", "room_id", roomID, "epoch", state.Snapshot.Epoch, "owner", state.OwnerUserID)
	case err != nil:
		return nil, fmt.Errorf("failed to load room: %w", err)
	default:
		h.logger.Info("room restored", "room_id", roomID, "epoch", state.Snapshot.Epoch, "seq", state.Snapshot.Seq)
	}

	r := newRoom(h, roomID, state)
	h.rooms[roomID] = r
	return r, nil
}

// evict forgets r if it is still the registered room for its id.
func (h *Hub) evict(r *Room) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.rooms[r.id]; ok && cur == r {
		delete(h.rooms, r.id)
	}
}

// Room returns the live room or nil.
func (h *Hub) Room(roomID string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[roomID]
}

// Shutdown disconnects every peer. Persisted state is kept so rooms
// resume after restart.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.rooms = make(map[string]*Room)
	h.mu.Unlock()

	for _, r := range rooms {
		r.disconnectAll()
	}
}
