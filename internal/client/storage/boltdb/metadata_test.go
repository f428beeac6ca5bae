package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/notesync/internal/models"
)

func TestSaveAndGetLastSyncTimestamp(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// Изначально, если timestamp не сохранён, ожидаем 0
	ts, err := store.GetLastSyncTimestamp(ctx, models.EntityTypeNote)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ts)

	require.NoError(t, store.SaveLastSyncTimestamp(ctx, models.EntityTypeNote, 1234567890))

	gotTS, err := store.GetLastSyncTimestamp(ctx, models.EntityTypeNote)
	require.NoError(t, err)
	assert.Equal(t, int64(1234567890), gotTS)

	// другие типы не затронуты
	other, err := store.GetLastSyncTimestamp(ctx, models.EntityTypeFolder)
	require.NoError(t, err)
	assert.Equal(t, int64(0), other)
}

func TestGetLastSyncTimestamp_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// Удаляем bucket metadata напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketMetadata)
	})
	require.NoError(t, err)

	_, err = store.GetLastSyncTimestamp(ctx, models.EntityTypeNote)
	assert.Error(t, err)
	assert.Error(t, store.SaveLastSyncTimestamp(ctx, models.EntityTypeNote, 1))
}
