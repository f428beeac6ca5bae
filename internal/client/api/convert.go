package api

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/pkg/api"
)

// MutationFromItem builds the push request of a queue item.
// The item payload is the serialized entity as it was when enqueued.
func MutationFromItem(item *models.QueueItem) (*api.MutationRequest, error) {
	req := &api.MutationRequest{
		ID:         item.ID,
		EntityID:   item.EntityID,
		EntityType: string(item.EntityType),
		Operation:  string(item.Operation),
	}

	if len(item.Payload) > 0 {
		var e models.Entity
		if err := json.Unmarshal(item.Payload, &e); err != nil {
			return nil, fmt.Errorf("%w: invalid payload of queue item %s: %v", ErrPermanent, item.ID, err)
		}
		req.UpdatedAt = e.UpdatedAt
		if item.Operation != models.OperationDelete {
			req.Entity = api.EntityFromModel(&e)
		}
	}

	return req, nil
}
