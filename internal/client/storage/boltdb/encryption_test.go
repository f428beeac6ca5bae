package boltdb

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/models"
)

func TestUnlock_SealsRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "enc.db")
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Unlock(ctx, "passphrase"))
	assert.True(t, store.Encrypted())

	require.NoError(t, store.Put(ctx, note("n1", "f1")))
	require.NoError(t, store.AppendItem(ctx, queueItem("q1", "n1")))

	// на диске нет открытого текста
	err = store.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketEntities).Bucket([]byte(models.EntityTypeNote)).Get([]byte("n1"))
		assert.Equal(t, recordSealed, raw[0])
		assert.False(t, bytes.Contains(raw, []byte(`"title"`)))
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// без Unlock чтение и запись запрещены
	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()
	assert.True(t, store.Encrypted())

	_, err = store.Get(ctx, models.EntityTypeNote, "n1")
	assert.ErrorIs(t, err, storage.ErrLocked)
	assert.ErrorIs(t, store.Put(ctx, note("n2", "")), storage.ErrLocked)

	assert.ErrorIs(t, store.Unlock(ctx, "wrong"), storage.ErrWrongPassphrase)

	require.NoError(t, store.Unlock(ctx, "passphrase"))
	got, err := store.Get(ctx, models.EntityTypeNote, "n1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "f1", got.Indexes[models.IndexFolderID])

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "q1", items[0].ID)
}

func TestUnlock_ReadsPlainRecordsWrittenBefore(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.Put(ctx, note("old", "")))
	require.NoError(t, store.Unlock(ctx, "passphrase"))
	require.NoError(t, store.Put(ctx, note("new", "")))

	all, err := store.ListAll(ctx, models.EntityTypeNote)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
