package queue

import (
	"context"

	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/pkg/api"
)

//go:generate moq -out pusher_mock.go . Pusher

// Pusher delivers one mutation to the remote.
// Errors are classified with the sentinels of internal/client/api.
type Pusher interface {
	PushMutation(ctx context.Context, item *models.QueueItem) (*api.MutationResponse, error)
}
