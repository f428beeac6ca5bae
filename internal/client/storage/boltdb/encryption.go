package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/crypto"
)

// Первый байт каждой записи определяет формат
const (
	recordPlain  byte = 0
	recordSealed byte = 1
)

var (
	keySalt        = []byte("encryption_salt")
	keyFingerprint = []byte("key_fingerprint")
)

// Unlock derives the encryption key from passphrase and enables sealing of
// every record written from now on. The first call on a store generates the
// salt; later calls must use the same passphrase or get ErrWrongPassphrase.
func (s *Storage) Unlock(ctx context.Context, passphrase string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	var salt []byte
	var fingerprint string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if v := bucket.Get(keySalt); v != nil {
			salt = append([]byte(nil), v...)
		}
		fingerprint = string(bucket.Get(keyFingerprint))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read encryption metadata: %w", err)
	}

	fresh := salt == nil
	if fresh {
		if salt, err = crypto.NewSalt(); err != nil {
			return err
		}
	}

	key, err := crypto.DeriveKey(passphrase, salt)
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}

	if fresh {
		err = s.db.Update(func(tx *bbolt.Tx) error {
			bucket := tx.Bucket(bucketMetadata)
			if err := bucket.Put(keySalt, salt); err != nil {
				return err
			}
			return bucket.Put(keyFingerprint, []byte(crypto.Fingerprint(key)))
		})
		if err != nil {
			return fmt.Errorf("failed to save encryption metadata: %w", err)
		}
	} else if err := crypto.VerifyFingerprint(key, fingerprint); err != nil {
		return storage.ErrWrongPassphrase
	}

	s.mu.Lock()
	s.key = key
	s.encrypted = true
	s.mu.Unlock()
	return nil
}

// Encrypted reports whether the store holds an encryption salt.
func (s *Storage) Encrypted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.encrypted
}

func (s *Storage) hasSalt() (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketMetadata).Get(keySalt) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to read encryption metadata: %w", err)
	}
	return found, nil
}

// encode сериализует значение и шифрует его, если хранилище разблокировано.
// aad привязывает запись к её ключу.
func (s *Storage) encode(aad []byte, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	s.mu.RLock()
	key, encrypted := s.key, s.encrypted
	s.mu.RUnlock()

	if !encrypted {
		return append([]byte{recordPlain}, data...), nil
	}
	if key == nil {
		return nil, storage.ErrLocked
	}

	sealed, err := crypto.Seal(data, key, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt record: %w", err)
	}
	return append([]byte{recordSealed}, sealed...), nil
}

// decode обратная операция к encode
func (s *Storage) decode(aad, raw []byte, v any) error {
	if len(raw) == 0 {
		return errors.New("empty record")
	}

	data := raw[1:]
	switch raw[0] {
	case recordPlain:
	case recordSealed:
		s.mu.RLock()
		key := s.key
		s.mu.RUnlock()
		if key == nil {
			return storage.ErrLocked
		}
		opened, err := crypto.Open(data, key, aad)
		if err != nil {
			return err
		}
		data = opened
	default:
		return fmt.Errorf("unknown record format %d", raw[0])
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return nil
}
