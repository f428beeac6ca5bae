package storage

import (
	"context"

	"github.com/iudanet/notesync/internal/models"
)

//go:generate moq -out entities_mock.go . EntityStorage

// EntityStorage is the durable per-device store of syncable entities.
// Missing records are never an error: Get returns nil, Delete is a no-op.
type EntityStorage interface {
	// Get returns the entity or nil if it does not exist.
	Get(ctx context.Context, entityType models.EntityType, id string) (*models.Entity, error)

	// Put writes the entity and stamps UpdatedAt with the current time.
	// The stamped value is written back into e.
	Put(ctx context.Context, e *models.Entity) error

	// PutVerbatim writes the entity keeping the caller supplied UpdatedAt.
	// Used to apply remote records during reconciliation.
	PutVerbatim(ctx context.Context, e *models.Entity) error

	// Delete removes the entity. Unknown ids are ignored.
	Delete(ctx context.Context, entityType models.EntityType, id string) error

	// ListAll returns every entity of the type ordered by id.
	ListAll(ctx context.Context, entityType models.EntityType) ([]*models.Entity, error)

	// ListByIndex returns entities whose index field equals value.
	ListByIndex(ctx context.Context, entityType models.EntityType, field, value string) ([]*models.Entity, error)
}
