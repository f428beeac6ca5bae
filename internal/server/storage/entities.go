package storage

import (
	"context"
	"fmt"

	"github.com/iudanet/notesync/internal/models"
)

// EntityStorage is the server-side source of truth for syncable entities.
// Every record is scoped to the user that pushed it.
type EntityStorage interface {
	// ListEntities returns all live (not deleted) entities of one type.
	// Returns empty slice if nothing is stored.
	ListEntities(ctx context.Context, userID string, entityType models.EntityType) ([]*models.Entity, error)

	// GetEntity returns one live entity.
	// Returns ErrEntryNotFound if it is missing or deleted.
	GetEntity(ctx context.Context, userID string, entityType models.EntityType, id string) (*models.Entity, error)

	// ApplyMutation applies a pushed change with last-write-wins semantics.
	// Replaying an already recorded mutation id returns the recorded result
	// and changes nothing.
	ApplyMutation(ctx context.Context, userID string, m *Mutation) (*MutationResult, error)
}

// Mutation is one pushed change.
type Mutation struct {
	Entity     *models.Entity    // Entity новое состояние, nil для delete
	ID         string            // ID идентификатор мутации (ключ идемпотентности)
	EntityID   string            // EntityID идентификатор сущности
	EntityType models.EntityType // EntityType тип сущности
	Operation  models.Operation  // Operation create, update или delete
	UpdatedAt  int64             // UpdatedAt метка времени изменения, epoch ms
}

// Validate checks the mutation shape.
func (m *Mutation) Validate() error {
	switch {
	case m.ID == "" || m.EntityID == "":
		return fmt.Errorf("%w: mutation id and entity id are required", ErrInvalidMutation)
	case !m.EntityType.Valid():
		return fmt.Errorf("%w: unknown entity type %q", ErrInvalidMutation, m.EntityType)
	case !m.Operation.Valid():
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidMutation, m.Operation)
	}

	if m.Operation == models.OperationDelete {
		return nil
	}
	if m.Entity == nil {
		return fmt.Errorf("%w: %s requires an entity", ErrInvalidMutation, m.Operation)
	}
	if m.Entity.ID != m.EntityID || m.Entity.Type != m.EntityType {
		return fmt.Errorf("%w: entity does not match mutation target", ErrInvalidMutation)
	}
	return nil
}

// MutationResult is the outcome of ApplyMutation.
type MutationResult struct {
	Applied   bool  // Applied false когда на сервере уже более новая копия
	UpdatedAt int64 // UpdatedAt метка времени серверной копии после применения
}
