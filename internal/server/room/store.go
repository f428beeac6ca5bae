package room

import (
	"context"
	"sync"

	"github.com/iudanet/notesync/internal/models"
)

// State is the persisted part of a room. Presence is never persisted.
type State struct {
	OwnerUserID string          `json:"ownerUserId"`
	Snapshot    models.Snapshot `json:"snapshot"`
}

// SnapshotStore keeps room state across relay restarts so that an owner
// reconnecting to a room keeps its epoch and document.
//
//go:generate moq -out store_mock.go . SnapshotStore
type SnapshotStore interface {
	// Load returns ErrStateNotFound for unknown rooms.
	Load(ctx context.Context, roomID string) (*State, error)
	Save(ctx context.Context, roomID string, state *State) error
	// Delete is a no-op for unknown rooms.
	Delete(ctx context.Context, roomID string) error
}

// MemoryStore is a process-local SnapshotStore.
type MemoryStore struct {
	states map[string]State
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

// Load returns a copy of the stored state.
func (s *MemoryStore) Load(_ context.Context, roomID string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[roomID]
	if !ok {
		return nil, ErrStateNotFound
	}
	st.Snapshot = st.Snapshot.Clone()
	return &st, nil
}

// Save stores a copy of state.
func (s *MemoryStore) Save(_ context.Context, roomID string, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := *state
	st.Snapshot = st.Snapshot.Clone()
	s.states[roomID] = st
	return nil
}

// Delete removes the state of the room.
func (s *MemoryStore) Delete(_ context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, roomID)
	return nil
}
