package storage

import (
	"context"

	"github.com/iudanet/notesync/internal/models"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastSyncTimestamp saves the time of the last successful reconcile of a type
	SaveLastSyncTimestamp(ctx context.Context, entityType models.EntityType, timestamp int64) error

	// GetLastSyncTimestamp retrieves the time of the last successful reconcile of a type
	// Returns 0 if no sync has been performed yet
	GetLastSyncTimestamp(ctx context.Context, entityType models.EntityType) (int64, error)
}
