package boltdb

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/models"
)

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func queueAAD(key []byte) []byte {
	return append([]byte("queue/"), key...)
}

// AppendItem stores a new item at the tail of the queue and assigns its Seq.
func (s *Storage) AppendItem(ctx context.Context, item *models.QueueItem) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if item == nil || item.ID == "" {
		return fmt.Errorf("queue item id is required")
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)
		ids := tx.Bucket(bucketQueueIDs)

		if ids.Get([]byte(item.ID)) != nil {
			return fmt.Errorf("queue item %s already exists", item.ID)
		}

		// NextSequence монотонно растёт и задаёт порядок FIFO
		seq, err := queue.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}
		item.Seq = seq

		key := seqKey(seq)
		data, err := s.encode(queueAAD(key), item)
		if err != nil {
			return err
		}
		if err := queue.Put(key, data); err != nil {
			return fmt.Errorf("failed to save queue item: %w", err)
		}
		return ids.Put([]byte(item.ID), key)
	})
	if err != nil {
		return fmt.Errorf("failed to append queue item: %w", err)
	}

	return nil
}

// UpdateItem overwrites an existing item keeping its position.
func (s *Storage) UpdateItem(ctx context.Context, item *models.QueueItem) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		key := tx.Bucket(bucketQueueIDs).Get([]byte(item.ID))
		if key == nil {
			return storage.ErrItemNotFound
		}
		item.Seq = binary.BigEndian.Uint64(key)

		data, err := s.encode(queueAAD(key), item)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketQueue).Put(key, data); err != nil {
			return fmt.Errorf("failed to update queue item: %w", err)
		}
		return nil
	})
}

// DeleteItem removes an item from the queue.
func (s *Storage) DeleteItem(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		ids := tx.Bucket(bucketQueueIDs)
		key := ids.Get([]byte(id))
		if key == nil {
			return storage.ErrItemNotFound
		}
		if err := tx.Bucket(bucketQueue).Delete(key); err != nil {
			return fmt.Errorf("failed to delete queue item: %w", err)
		}
		return ids.Delete([]byte(id))
	})
}

// GetItem returns one item or ErrItemNotFound.
func (s *Storage) GetItem(ctx context.Context, id string) (*models.QueueItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var item *models.QueueItem
	err := s.db.View(func(tx *bbolt.Tx) error {
		key := tx.Bucket(bucketQueueIDs).Get([]byte(id))
		if key == nil {
			return storage.ErrItemNotFound
		}
		raw := tx.Bucket(bucketQueue).Get(key)
		if raw == nil {
			return storage.ErrItemNotFound
		}
		item = &models.QueueItem{}
		return s.decode(queueAAD(key), raw, item)
	})
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get queue item: %w", err)
	}

	return item, nil
}

// ListItems returns all items in enqueue order.
func (s *Storage) ListItems(ctx context.Context) ([]*models.QueueItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	items := []*models.QueueItem{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketQueue).ForEach(func(k, v []byte) error {
			var item models.QueueItem
			if err := s.decode(queueAAD(k), v, &item); err != nil {
				return err
			}
			items = append(items, &item)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list queue items: %w", err)
	}

	return items, nil
}

// ResetInFlight moves items interrupted by a crash back to pending.
func (s *Storage) ResetInFlight(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var reset int
	err := s.db.Update(func(tx *bbolt.Tx) error {
		queue := tx.Bucket(bucketQueue)

		var stuck []*models.QueueItem
		err := queue.ForEach(func(k, v []byte) error {
			var item models.QueueItem
			if err := s.decode(queueAAD(k), v, &item); err != nil {
				return err
			}
			if item.State == models.ItemStateInFlight {
				stuck = append(stuck, &item)
			}
			return nil
		})
		if err != nil {
			return err
		}

		// Изменять bucket внутри ForEach нельзя, поэтому пишем отдельно
		for _, item := range stuck {
			item.State = models.ItemStatePending
			key := seqKey(item.Seq)
			data, err := s.encode(queueAAD(key), item)
			if err != nil {
				return err
			}
			if err := queue.Put(key, data); err != nil {
				return fmt.Errorf("failed to reset queue item: %w", err)
			}
		}
		reset = len(stuck)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reset in-flight items: %w", err)
	}

	return reset, nil
}

var _ storage.QueueStorage = (*Storage)(nil)
