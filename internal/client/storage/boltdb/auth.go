package boltdb

import (
	"context"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/notesync/internal/client/storage"
)

var authKey = []byte("current")

// SaveAuth stores the session credentials. The record is sealed like any
// other record when the store is unlocked.
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := s.encode(authKey, auth)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketAuth).Put(authKey, data); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}
		return nil
	})
}

// GetAuth retrieves stored credentials or ErrAuthNotFound.
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var auth *storage.AuthData
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketAuth).Get(authKey)
		if raw == nil {
			return storage.ErrAuthNotFound
		}
		auth = &storage.AuthData{}
		return s.decode(authKey, raw, auth)
	})
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}

	return auth, nil
}

// DeleteAuth removes stored credentials (logout)
func (s *Storage) DeleteAuth(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket.Get(authKey) == nil {
			return storage.ErrAuthNotFound
		}
		if err := bucket.Delete(authKey); err != nil {
			return fmt.Errorf("failed to delete auth data: %w", err)
		}
		return nil
	})
}

var _ storage.AuthStorage = (*Storage)(nil)
