package room

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/pkg/api"
)

// member is one attached connection.
type member struct {
	peer     Peer
	identity Identity
	role     models.Role
	presence models.Presence
}

// Room is one live collaboration session.
// All state is guarded by mu; peers receive messages in the order they
// were produced under the lock.
type Room struct {
	hub         *Hub
	members     map[string]*member
	id          string
	ownerUserID string
	ownerConn   string // ownerConn соединение владельца, пусто пока он отключён
	snapshot    models.Snapshot
	mu          sync.Mutex
	closed      bool // closed комната выгружена из хаба
	ended       bool // ended владелец завершил сессию
}

func newRoom(h *Hub, id string, state *State) *Room {
	snap := state.Snapshot.Clone()
	if snap.Document.Canvas == nil {
		snap.Document.Canvas = make(map[string]models.StrokeDocument)
	}
	return &Room{
		hub:         h,
		id:          id,
		ownerUserID: state.OwnerUserID,
		snapshot:    snap,
		members:     make(map[string]*member),
	}
}

// ID returns the room id.
func (r *Room) ID() string { return r.id }

// Snapshot returns a copy of the authoritative snapshot.
func (r *Room) Snapshot() models.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot.Clone()
}

// Presences returns the presence of every attached connection ordered by connection id.
func (r *Room) Presences() []models.Presence {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presencesLocked("")
}

func (r *Room) add(peer Peer, req JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errRoomClosed
	}
	if req.Role == models.RoleOwner && req.Identity.UserID != r.ownerUserID {
		return fmt.Errorf("%w: room %s is owned by another user", ErrForbidden, r.id)
	}

	connID := peer.ID()
	presence := normalizePresence(req.Presence, connID, req.Identity)
	peers := r.presencesLocked("")

	r.members[connID] = &member{
		peer:     peer,
		identity: req.Identity,
		role:     req.Role,
		presence: presence,
	}
	if req.Role == models.RoleOwner {
		r.ownerConn = connID
	}

	snap := r.snapshot.Clone()
	r.sendLocked(peer, &api.RoomMessage{
		Type:         api.MsgWelcome,
		ConnectionID: connID,
		Role:         req.Role,
		Snapshot:     &snap,
		Peers:        peers,
	})
	r.broadcastLocked(connID, &api.RoomMessage{Type: api.MsgPresence, Presence: &presence})

	r.hub.logger.Info("peer joined",
		"room_id", r.id,
		"connection_id", connID,
		"user_id", req.Identity.UserID,
		"role", req.Role,
		"peers", len(r.members),
	)
	return nil
}

// Handle dispatches one message received from connID.
func (r *Room) Handle(ctx context.Context, connID string, msg *api.RoomMessage) error {
	switch msg.Type {
	case api.MsgPresence:
		if msg.Presence == nil {
			return fmt.Errorf("%w: presence message without presence", ErrBadRequest)
		}
		return r.UpdatePresence(connID, *msg.Presence)
	case api.MsgStorageSet:
		if msg.Document == nil {
			return fmt.Errorf("%w: storage_set without document", ErrBadRequest)
		}
		_, err := r.SetStorage(ctx, connID, *msg.Document)
		return err
	case api.MsgEvent:
		if msg.Event == nil || msg.Event.Type == "" {
			return fmt.Errorf("%w: event message without event", ErrBadRequest)
		}
		return r.Broadcast(connID, *msg.Event)
	case api.MsgEnd:
		return r.End(ctx, connID)
	default:
		return fmt.Errorf("%w: unexpected message type %q", ErrBadRequest, msg.Type)
	}
}

// UpdatePresence replaces the presence of connID and relays it to the other peers.
func (r *Room) UpdatePresence(connID string, p models.Presence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.memberLocked(connID)
	if err != nil {
		return err
	}

	m.presence = normalizePresence(p, connID, m.identity)
	presence := m.presence
	r.broadcastLocked(connID, &api.RoomMessage{Type: api.MsgPresence, Presence: &presence})
	return nil
}

// SetStorage replaces the shared document. Only the owner connection may
// call it; the new snapshot is sent to every peer including the author.
func (r *Room) SetStorage(ctx context.Context, connID string, doc models.SharedDocument) (models.Snapshot, error) {
	r.mu.Lock()

	m, err := r.memberLocked(connID)
	if err != nil {
		r.mu.Unlock()
		return models.Snapshot{}, err
	}
	if !m.role.CanMutate() || connID != r.ownerConn {
		r.mu.Unlock()
		r.hub.logger.Warn("storage write rejected",
			"room_id", r.id,
			"connection_id", connID,
			"role", m.role,
		)
		return models.Snapshot{}, fmt.Errorf("%w: only the owner may write shared storage", ErrForbidden)
	}

	doc = doc.Clone()
	r.snapshot = models.Snapshot{
		Epoch:    r.snapshot.Epoch,
		Seq:      r.snapshot.Seq + 1,
		Origin:   connID,
		Document: doc,
	}
	snap := r.snapshot.Clone()
	state := &State{OwnerUserID: r.ownerUserID, Snapshot: r.snapshot.Clone()}
	r.broadcastLocked("", &api.RoomMessage{Type: api.MsgStorage, Snapshot: &snap})
	r.mu.Unlock()

	// Ошибка сохранения не откатывает рассылку: состояние живёт в памяти
	if err := r.hub.store.Save(ctx, r.id, state); err != nil {
		r.hub.logger.Error("failed to persist room state", "room_id", r.id, "seq", snap.Seq, "error", err)
	}
	return snap, nil
}

// Broadcast relays a fire-and-forget event to every other peer.
func (r *Room) Broadcast(connID string, ev models.RoomEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.memberLocked(connID); err != nil {
		return err
	}

	ev.From = connID
	if ev.Timestamp == 0 {
		ev.Timestamp = r.hub.now().UnixMilli()
	}
	r.broadcastLocked(connID, &api.RoomMessage{Type: api.MsgEvent, Event: &ev})
	return nil
}

// End closes the room for everyone and drops its persisted state.
func (r *Room) End(ctx context.Context, connID string) error {
	r.mu.Lock()

	m, err := r.memberLocked(connID)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if !m.role.CanMutate() || connID != r.ownerConn {
		r.mu.Unlock()
		return fmt.Errorf("%w: only the owner may end the session", ErrForbidden)
	}

	r.ended = true
	r.closed = true
	r.broadcastLocked("", &api.RoomMessage{Type: api.MsgSessionEnded})
	peers := r.detachLocked()
	r.mu.Unlock()

	r.hub.evict(r)
	if err := r.hub.store.Delete(ctx, r.id); err != nil {
		r.hub.logger.Error("failed to delete room state", "room_id", r.id, "error", err)
	}
	for _, p := range peers {
		p.Close()
	}

	r.hub.logger.Info("room ended", "room_id", r.id, "by", connID)
	return nil
}

// Leave detaches connID. The room is unloaded when the last peer leaves;
// its state stays in the store until the owner ends it.
func (r *Room) Leave(connID string) {
	r.mu.Lock()

	m, ok := r.members[connID]
	if !ok {
		r.mu.Unlock()
		return
	}

	delete(r.members, connID)
	if r.ownerConn == connID {
		r.ownerConn = ""
	}
	r.broadcastLocked(connID, &api.RoomMessage{Type: api.MsgPeerLeft, ConnectionID: connID})

	empty := len(r.members) == 0
	if empty {
		r.closed = true
	}
	r.mu.Unlock()

	r.hub.logger.Info("peer left", "room_id", r.id, "connection_id", connID, "role", m.role)
	if empty {
		r.hub.evict(r)
	}
}

func (r *Room) disconnectAll() {
	r.mu.Lock()
	r.closed = true
	peers := r.detachLocked()
	r.mu.Unlock()

	for _, p := range peers {
		p.Close()
	}
}

func (r *Room) detachLocked() []Peer {
	peers := make([]Peer, 0, len(r.members))
	for _, m := range r.members {
		peers = append(peers, m.peer)
	}
	r.members = make(map[string]*member)
	r.ownerConn = ""
	return peers
}

func (r *Room) memberLocked(connID string) (*member, error) {
	if r.ended {
		return nil, ErrRoomEnded
	}
	m, ok := r.members[connID]
	if !ok {
		return nil, ErrNotMember
	}
	return m, nil
}

// presencesLocked returns presences of all members except skip.
func (r *Room) presencesLocked(skip string) []models.Presence {
	out := make([]models.Presence, 0, len(r.members))
	for id, m := range r.members {
		if id == skip {
			continue
		}
		out = append(out, m.presence.WithCursor(m.presence.Cursor))
	}
	slices.SortFunc(out, func(a, b models.Presence) int {
		return cmp.Compare(a.ConnectionID, b.ConnectionID)
	})
	return out
}

// broadcastLocked sends msg to every member except skip.
func (r *Room) broadcastLocked(skip string, msg *api.RoomMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.hub.logger.Error("failed to encode room message", "room_id", r.id, "type", msg.Type, "error", err)
		return
	}
	for id, m := range r.members {
		if id == skip {
			continue
		}
		if !m.peer.Send(data) {
			r.hub.logger.Debug("message dropped", "room_id", r.id, "connection_id", id, "type", msg.Type)
		}
	}
}

func (r *Room) sendLocked(p Peer, msg *api.RoomMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.hub.logger.Error("failed to encode room message", "room_id", r.id, "type", msg.Type, "error", err)
		return
	}
	if !p.Send(data) {
		r.hub.logger.Debug("message dropped", "room_id", r.id, "connection_id", p.ID(), "type", msg.Type)
	}
}

// normalizePresence stamps the fields the server is authoritative for.
func normalizePresence(p models.Presence, connID string, id Identity) models.Presence {
	p = p.WithCursor(p.Cursor)
	p.ConnectionID = connID
	p.UserID = id.UserID
	if p.UserName == "" {
		p.UserName = id.UserName
	}
	return p
}
