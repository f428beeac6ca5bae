package room

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notesync/internal/models"
)

func testState() *State {
	return &State{
		OwnerUserID: "edu",
		Snapshot: models.Snapshot{
			Epoch:  "epoch-1",
			Seq:    3,
			Origin: "c-owner",
			Document: models.SharedDocument{
				CurrentFileID: "file-1",
				CurrentPage:   2,
				Canvas: map[string]models.StrokeDocument{
					"file-1-2": {Version: "5.3.0", Objects: []json.RawMessage{json.RawMessage(`{"type":"path"}`)}},
				},
				Polls: []models.Poll{{ID: "p1", Question: "?", Options: []models.PollOption{{Text: "yes"}}, IsActive: true}},
			},
		},
	}
}

// runStoreContract проверяет общее поведение всех реализаций SnapshotStore
func runStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrStateNotFound)

	want := testState()
	require.NoError(t, store.Save(ctx, "lecture", want))

	got, err := store.Load(ctx, "lecture")
	require.NoError(t, err)
	assert.Equal(t, want.OwnerUserID, got.OwnerUserID)
	assert.Equal(t, want.Snapshot.Epoch, got.Snapshot.Epoch)
	assert.Equal(t, want.Snapshot.Seq, got.Snapshot.Seq)
	assert.Equal(t, want.Snapshot.Document.CurrentPage, got.Snapshot.Document.CurrentPage)
	require.Contains(t, got.Snapshot.Document.Canvas, "file-1-2")
	assert.JSONEq(t, `{"type":"path"}`, string(got.Snapshot.Document.Canvas["file-1-2"].Objects[0]))
	require.Len(t, got.Snapshot.Document.Polls, 1)

	// Изменение загруженной копии не влияет на хранилище
	got.Snapshot.Document.CurrentPage = 99
	again, err := store.Load(ctx, "lecture")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Snapshot.Document.CurrentPage)

	require.NoError(t, store.Delete(ctx, "lecture"))
	_, err = store.Load(ctx, "lecture")
	assert.ErrorIs(t, err, ErrStateNotFound)

	require.NoError(t, store.Delete(ctx, "lecture"))
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	s := miniredis.RunT(t)

	store, err := NewRedisStore(context.Background(), "redis://"+s.Addr(), time.Hour)
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	require.NoError(t, store.Ping(context.Background()))
	runStoreContract(t, store)
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)

	store, err := NewRedisStore(ctx, "redis://"+s.Addr(), time.Minute)
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	require.NoError(t, store.Save(ctx, "lecture", testState()))
	assert.Equal(t, time.Minute, s.TTL("notesync:room:lecture"))

	s.FastForward(2 * time.Minute)
	_, err = store.Load(ctx, "lecture")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "not a url", time.Minute)
	assert.Error(t, err)
}

func TestRedisStore_WithHub(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	store, err := NewRedisStore(ctx, "redis://"+s.Addr(), 0)
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	h := NewHub(store, testLogger())
	owner := newFakePeer("c-owner")
	r := joinOwner(t, h, "lecture", owner)
	_, err = r.SetStorage(ctx, "c-owner", docWithPage(8))
	require.NoError(t, err)
	r.Leave("c-owner")

	// Новый хаб (перезапуск сервера) восстанавливает комнату из Redis
	restarted := NewHub(store, testLogger())
	obs := newFakePeer("c-obs")
	joinObserver(t, restarted, "lecture", obs)
	welcome := obs.last(t)
	assert.Equal(t, r.Snapshot().Epoch, welcome.Snapshot.Epoch)
	assert.Equal(t, 8, welcome.Snapshot.Document.CurrentPage)
}
