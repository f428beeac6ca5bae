// Package boltdb implements the client local store on top of bbolt.
//
// Layout:
//
//	entities/<type>/<id>              -> record
//	indexes/<type>/<field>\x00<value>\x00<id> -> empty
//	queue/<seq big-endian>            -> record
//	queue_ids/<item id>               -> seq
//	metadata/<key>                    -> raw value
//	auth/current                      -> record
//
// Records are JSON, optionally sealed with AES-GCM once the store is
// unlocked with a passphrase (see Unlock).
package boltdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketAuth     = []byte("auth")
	bucketEntities = []byte("entities")
	bucketIndexes  = []byte("indexes")
	bucketQueue    = []byte("queue")
	bucketQueueIDs = []byte("queue_ids")
	bucketMetadata = []byte("metadata")

	allBuckets = [][]byte{bucketAuth, bucketEntities, bucketIndexes, bucketQueue, bucketQueueIDs, bucketMetadata}
)

// Option configures Storage.
type Option func(*Storage)

// WithClock overrides the clock used to stamp UpdatedAt on Put.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db  *bbolt.DB
	now func() time.Time

	mu        sync.RWMutex
	key       []byte // key ключ шифрования, nil пока хранилище не разблокировано
	encrypted bool   // encrypted в базе сохранена соль, записи нужно шифровать
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string, opts ...Option) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db, now: time.Now}
	for _, opt := range opts {
		opt(storage)
	}

	// Инициализируем buckets
	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	encrypted, err := storage.hasSalt()
	if err != nil {
		db.Close()
		return nil, err
	}
	storage.encrypted = encrypted

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}
