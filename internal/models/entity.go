package models

import (
	"encoding/json"
	"fmt"
)

// EntityType identifies a family of syncable records.
type EntityType string

// Entity types known to the sync engine.
const (
	EntityTypeNote        EntityType = "note"
	EntityTypeFolder      EntityType = "folder"
	EntityTypeFile        EntityType = "file"
	EntityTypeContentPage EntityType = "content_page"
	EntityTypeRecording   EntityType = "recording"
)

// EntityTypes lists every entity type in the order they are reconciled.
// Folders come before notes so that parents exist before children.
var EntityTypes = []EntityType{
	EntityTypeFolder,
	EntityTypeNote,
	EntityTypeFile,
	EntityTypeContentPage,
	EntityTypeRecording,
}

// Valid reports whether t is a known entity type.
func (t EntityType) Valid() bool {
	for _, known := range EntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseEntityType converts a string into a known EntityType.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown entity type: %q", s)
	}
	return t, nil
}

// Entity is the generic syncable record stored on the device and on the server.
// The sync engine never looks inside Data.
type Entity struct {
	Indexes   map[string]string `json:"indexes,omitempty"` // Indexes значения вторичных индексов (field -> value)
	ID        string            `json:"id"`                // ID стабильный глобально уникальный идентификатор
	Type      EntityType        `json:"type"`              // Type тип сущности
	Data      json.RawMessage   `json:"data,omitempty"`    // Data доменные поля (непрозрачны для движка)
	UpdatedAt int64             `json:"updatedAt"`         // UpdatedAt время последнего изменения, epoch ms
}

// GetID returns the entity id.
func (e *Entity) GetID() string { return e.ID }

// GetUpdatedAt returns the last-write timestamp in epoch milliseconds.
func (e *Entity) GetUpdatedAt() int64 { return e.UpdatedAt }

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	clone := &Entity{
		ID:        e.ID,
		Type:      e.Type,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Data != nil {
		clone.Data = make(json.RawMessage, len(e.Data))
		copy(clone.Data, e.Data)
	}
	if e.Indexes != nil {
		clone.Indexes = make(map[string]string, len(e.Indexes))
		for k, v := range e.Indexes {
			clone.Indexes[k] = v
		}
	}
	return clone
}
