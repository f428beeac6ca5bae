package boltdb

import (
	"bytes"
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/models"
)

const indexSep = 0x00

func entityAAD(entityType models.EntityType, id string) []byte {
	return []byte("entity/" + string(entityType) + "/" + id)
}

func indexPrefix(field, value string) []byte {
	key := make([]byte, 0, len(field)+len(value)+2)
	key = append(key, field...)
	key = append(key, indexSep)
	key = append(key, value...)
	return append(key, indexSep)
}

func indexKey(field, value, id string) []byte {
	return append(indexPrefix(field, value), id...)
}

// Get returns the entity or nil if it does not exist.
func (s *Storage) Get(ctx context.Context, entityType models.EntityType, id string) (*models.Entity, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entity *models.Entity
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities).Bucket([]byte(entityType))
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return nil
		}
		entity = &models.Entity{}
		return s.decode(entityAAD(entityType, id), raw, entity)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", entityType, id, err)
	}

	return entity, nil
}

// Put stamps UpdatedAt with the store clock and writes the entity.
func (s *Storage) Put(ctx context.Context, e *models.Entity) error {
	if e == nil {
		return fmt.Errorf("entity is nil")
	}
	e.UpdatedAt = s.now().UnixMilli()
	return s.PutVerbatim(ctx, e)
}

// PutVerbatim writes the entity keeping its UpdatedAt.
func (s *Storage) PutVerbatim(ctx context.Context, e *models.Entity) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if e == nil || e.ID == "" {
		return fmt.Errorf("entity id is required")
	}
	if !e.Type.Valid() {
		return fmt.Errorf("unknown entity type: %q", e.Type)
	}

	aad := entityAAD(e.Type, e.ID)
	data, err := s.encode(aad, e)
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.Bucket(bucketEntities).CreateBucketIfNotExists([]byte(e.Type))
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		indexes, err := tx.Bucket(bucketIndexes).CreateBucketIfNotExists([]byte(e.Type))
		if err != nil {
			return fmt.Errorf("failed to create index bucket: %w", err)
		}

		// Удаляем старые индексные ключи перед записью новых
		if raw := bucket.Get([]byte(e.ID)); raw != nil {
			var prev models.Entity
			if err := s.decode(aad, raw, &prev); err != nil {
				return err
			}
			if err := dropIndexes(indexes, &prev); err != nil {
				return err
			}
		}

		if err := bucket.Put([]byte(e.ID), data); err != nil {
			return fmt.Errorf("failed to save entity: %w", err)
		}
		for field, value := range e.Indexes {
			if err := indexes.Put(indexKey(field, value, e.ID), []byte{}); err != nil {
				return fmt.Errorf("failed to save index %s: %w", field, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// Delete removes the entity. Unknown ids are ignored.
func (s *Storage) Delete(ctx context.Context, entityType models.EntityType, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities).Bucket([]byte(entityType))
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return nil
		}

		var prev models.Entity
		if err := s.decode(entityAAD(entityType, id), raw, &prev); err != nil {
			return err
		}
		if indexes := tx.Bucket(bucketIndexes).Bucket([]byte(entityType)); indexes != nil {
			if err := dropIndexes(indexes, &prev); err != nil {
				return err
			}
		}

		return bucket.Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("delete transaction failed: %w", err)
	}

	return nil
}

// ListAll returns every entity of the type ordered by id.
func (s *Storage) ListAll(ctx context.Context, entityType models.EntityType) ([]*models.Entity, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	entities := []*models.Entity{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities).Bucket([]byte(entityType))
		if bucket == nil {
			// Нет bucket - возвращаем пустой массив
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var entity models.Entity
			if err := s.decode(entityAAD(entityType, string(k)), v, &entity); err != nil {
				return err
			}
			entities = append(entities, &entity)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", entityType, err)
	}

	return entities, nil
}

// ListByIndex returns entities whose index field equals value, ordered by id.
func (s *Storage) ListByIndex(ctx context.Context, entityType models.EntityType, field, value string) ([]*models.Entity, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	entities := []*models.Entity{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		indexes := tx.Bucket(bucketIndexes).Bucket([]byte(entityType))
		bucket := tx.Bucket(bucketEntities).Bucket([]byte(entityType))
		if indexes == nil || bucket == nil {
			return nil
		}

		prefix := indexPrefix(field, value)
		c := indexes.Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			id := k[len(prefix):]
			raw := bucket.Get(id)
			if raw == nil {
				continue
			}
			var entity models.Entity
			if err := s.decode(entityAAD(entityType, string(id)), raw, &entity); err != nil {
				return err
			}
			entities = append(entities, &entity)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s by %s: %w", entityType, field, err)
	}

	return entities, nil
}

func dropIndexes(indexes *bbolt.Bucket, e *models.Entity) error {
	for field, value := range e.Indexes {
		if err := indexes.Delete(indexKey(field, value, e.ID)); err != nil {
			return fmt.Errorf("failed to delete index %s: %w", field, err)
		}
	}
	return nil
}

var _ storage.EntityStorage = (*Storage)(nil)
