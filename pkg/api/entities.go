package api

import (
	"encoding/json"

	"github.com/iudanet/notesync/internal/models"
)

// Entity is the wire form of a syncable record.
type Entity struct {
	Indexes   map[string]string `json:"indexes,omitempty"` // Indexes значения вторичных индексов
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Data      json.RawMessage   `json:"data,omitempty"`
	UpdatedAt int64             `json:"updatedAt"` // UpdatedAt epoch ms, часы клиента-автора
}

// Model converts the wire entity into the storage model.
func (e *Entity) Model() (*models.Entity, error) {
	t, err := models.ParseEntityType(e.Type)
	if err != nil {
		return nil, err
	}
	return &models.Entity{
		ID:        e.ID,
		Type:      t,
		Data:      e.Data,
		Indexes:   e.Indexes,
		UpdatedAt: e.UpdatedAt,
	}, nil
}

// EntityFromModel converts a storage model into its wire form.
func EntityFromModel(e *models.Entity) *Entity {
	return &Entity{
		ID:        e.ID,
		Type:      string(e.Type),
		Data:      e.Data,
		Indexes:   e.Indexes,
		UpdatedAt: e.UpdatedAt,
	}
}

// EntitiesResponse is the full remote snapshot of one entity type.
// Deleted records are not included.
type EntitiesResponse struct {
	Type       string   `json:"type"`
	Entities   []Entity `json:"entities"`
	ServerTime int64    `json:"serverTime"`
}

// MutationRequest pushes one queued change. ID is the queue item id and
// makes the request idempotent: replaying an applied id is acknowledged
// without changing anything.
type MutationRequest struct {
	ID         string  `json:"id"`
	EntityID   string  `json:"entityId"`
	EntityType string  `json:"entityType"`
	Operation  string  `json:"operation"` // Operation create, update или delete
	Entity     *Entity `json:"entity,omitempty"`
	UpdatedAt  int64   `json:"updatedAt"`
}

// MutationResponse acknowledges a mutation.
// Applied is false when the server already holds a newer copy.
type MutationResponse struct {
	ID        string `json:"id"`
	Applied   bool   `json:"applied"`
	UpdatedAt int64  `json:"updatedAt"` // UpdatedAt метка времени серверной копии
}
