package storage

import (
	"context"

	"github.com/iudanet/notesync/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage persists outbound mutations in enqueue order.
type QueueStorage interface {
	// AppendItem stores a new item and assigns its Seq.
	AppendItem(ctx context.Context, item *models.QueueItem) error

	// UpdateItem overwrites an existing item.
	// Returns ErrItemNotFound if the item does not exist.
	UpdateItem(ctx context.Context, item *models.QueueItem) error

	// DeleteItem removes an item.
	// Returns ErrItemNotFound if the item does not exist.
	DeleteItem(ctx context.Context, id string) error

	// GetItem returns one item or ErrItemNotFound.
	GetItem(ctx context.Context, id string) (*models.QueueItem, error)

	// ListItems returns all items ordered by Seq.
	ListItems(ctx context.Context) ([]*models.QueueItem, error)

	// ResetInFlight moves items left in flight by a crash back to pending
	// and returns how many were reset.
	ResetInFlight(ctx context.Context) (int, error)
}
