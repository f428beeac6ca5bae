package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notesync/internal/client/api"
	"github.com/iudanet/notesync/internal/client/connectivity"
	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/client/storage/boltdb"
	"github.com/iudanet/notesync/internal/models"
	apiv1 "github.com/iudanet/notesync/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testClock struct {
	ms atomic.Int64
}

func (c *testClock) now() time.Time { return time.UnixMilli(c.ms.Load()) }
func (c *testClock) advance(d time.Duration) { c.ms.Add(d.Milliseconds()) }

type fixture struct {
	queue   *Queue
	store   *boltdb.Storage
	pusher  *PusherMock
	monitor *connectivity.Monitor
	clock   *testClock
}

func newFixture(t *testing.T, push func(ctx context.Context, item *models.QueueItem) (*apiv1.MutationResponse, error)) *fixture {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := &testClock{}
	clock.ms.Store(1_000_000)

	f := &fixture{
		store:   store,
		pusher:  &PusherMock{PushMutationFunc: push},
		monitor: connectivity.NewMonitor(true),
		clock:   clock,
	}
	f.queue = New(store, f.pusher, f.monitor, Config{}, testLogger(), WithClock(clock.now))
	require.NoError(t, f.queue.Init(context.Background()))
	return f
}

func ack(ctx context.Context, item *models.QueueItem) (*apiv1.MutationResponse, error) {
	return &apiv1.MutationResponse{ID: item.ID, Applied: true}, nil
}

func entity(id string, t models.EntityType) *models.Entity {
	return &models.Entity{ID: id, Type: t, Data: json.RawMessage(`{}`), UpdatedAt: 1}
}

func TestQueue_EnqueueAndDrain(t *testing.T) {
	f := newFixture(t, ack)
	ctx := context.Background()

	item, err := f.queue.Enqueue(ctx, models.OperationCreate, entity("n1", models.EntityTypeNote))
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatePending, item.State)
	assert.Equal(t, int64(1_000_000), item.EnqueuedAt)
	assert.Equal(t, 1, f.queue.Stats().Pending)

	res, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pushed)

	items, err := f.queue.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	stats := f.queue.Stats()
	assert.Equal(t, 0, stats.Total())
	assert.Equal(t, DrainerIdle, stats.Drainer)
	assert.NotZero(t, stats.LastDrainAt)

	require.Len(t, f.pusher.PushMutationCalls(), 1)
	pushed := f.pusher.PushMutationCalls()[0].Item
	var payload models.Entity
	require.NoError(t, json.Unmarshal(pushed.Payload, &payload))
	assert.Equal(t, "n1", payload.ID)
}

func TestQueue_EnqueueValidation(t *testing.T) {
	f := newFixture(t, ack)
	ctx := context.Background()

	_, err := f.queue.Enqueue(ctx, "upsert", entity("n1", models.EntityTypeNote))
	assert.Error(t, err)
	_, err = f.queue.Enqueue(ctx, models.OperationCreate, entity("", models.EntityTypeNote))
	assert.Error(t, err)
	_, err = f.queue.Enqueue(ctx, models.OperationCreate, nil)
	assert.Error(t, err)
}

// элементы одной сущности не переупорядочиваются при сбоях
func TestQueue_FIFOPerEntityUnderFailures(t *testing.T) {
	var mu sync.Mutex
	var order []string
	failFirst := true

	f := newFixture(t, func(ctx context.Context, item *models.QueueItem) (*apiv1.MutationResponse, error) {
		mu.Lock()
		defer mu.Unlock()
		if item.EntityID == "n1" && failFirst {
			failFirst = false
			return nil, &api.StatusError{StatusCode: 503}
		}
		var e models.Entity
		_ = json.Unmarshal(item.Payload, &e)
		order = append(order, fmt.Sprintf("%s@%d", item.EntityID, e.UpdatedAt))
		return &apiv1.MutationResponse{ID: item.ID, Applied: true}, nil
	})
	ctx := context.Background()

	first := entity("n1", models.EntityTypeNote)
	first.UpdatedAt = 1
	second := entity("n1", models.EntityTypeNote)
	second.UpdatedAt = 2
	_, err := f.queue.Enqueue(ctx, models.OperationUpdate, first)
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, models.OperationUpdate, second)
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, models.OperationUpdate, entity("n2", models.EntityTypeNote))
	require.NoError(t, err)

	res, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Retrying)
	assert.Equal(t, 1, res.Pushed)
	assert.Equal(t, []string{"n2@1"}, order)

	items, err := f.queue.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Attempts)
	assert.Equal(t, int64(1_000_000+1000), items[0].NextAttemptAt)

	// до истечения задержки ничего не отправляется
	res, err = f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Pushed)

	f.clock.advance(time.Second)
	res, err = f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pushed)
	assert.Equal(t, []string{"n2@1", "n1@1", "n1@2"}, order)
}

// create отвечает медленнее update: порядок всё равно create, затем update
func TestQueue_FIFOPerEntityWithSlowResponses(t *testing.T) {
	var mu sync.Mutex
	var order []string
	inflight := map[string]int{}
	overlap := false

	f := newFixture(t, func(ctx context.Context, item *models.QueueItem) (*apiv1.MutationResponse, error) {
		mu.Lock()
		inflight[item.EntityID]++
		if inflight[item.EntityID] > 1 {
			overlap = true
		}
		mu.Unlock()

		if item.Operation == models.OperationCreate {
			time.Sleep(30 * time.Millisecond)
		}

		mu.Lock()
		inflight[item.EntityID]--
		order = append(order, item.EntityID+":"+string(item.Operation))
		mu.Unlock()
		return &apiv1.MutationResponse{ID: item.ID, Applied: true}, nil
	})
	ctx := context.Background()

	for _, e := range []*models.Entity{entity("n1", models.EntityTypeNote), entity("f1", models.EntityTypeFolder)} {
		_, err := f.queue.Enqueue(ctx, models.OperationCreate, e)
		require.NoError(t, err)
		_, err = f.queue.Enqueue(ctx, models.OperationUpdate, e)
		require.NoError(t, err)
	}

	res, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Pushed)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, overlap)
	perEntity := map[string][]string{}
	for _, op := range order {
		id, _, _ := strings.Cut(op, ":")
		perEntity[id] = append(perEntity[id], op)
	}
	assert.Equal(t, []string{"n1:create", "n1:update"}, perEntity["n1"])
	assert.Equal(t, []string{"f1:create", "f1:update"}, perEntity["f1"])
}

func TestQueue_RetriesExhausted(t *testing.T) {
	f := newFixture(t, func(ctx context.Context, item *models.QueueItem) (*apiv1.MutationResponse, error) {
		return nil, fmt.Errorf("push failed: %w", &api.StatusError{StatusCode: 500, Message: "boom"})
	})
	ctx := context.Background()

	_, err := f.queue.Enqueue(ctx, models.OperationCreate, entity("n1", models.EntityTypeNote))
	require.NoError(t, err)

	for i := 0; i < DefaultMaxAttempts; i++ {
		_, err := f.queue.Drain(ctx)
		require.NoError(t, err)
		f.clock.advance(DefaultMaxBackoff)
	}
	assert.Len(t, f.pusher.PushMutationCalls(), DefaultMaxAttempts)

	items, err := f.queue.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.ItemStateError, items[0].State)
	assert.Equal(t, DefaultMaxAttempts, items[0].Attempts)
	assert.Contains(t, items[0].LastError, "boom")
	assert.Equal(t, 1, f.queue.Stats().Failed)

	// терминальный элемент больше не отправляется
	_, err = f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Len(t, f.pusher.PushMutationCalls(), DefaultMaxAttempts)

	assert.ErrorIs(t, f.queue.Retry(ctx, "missing"), storage.ErrItemNotFound)
	require.NoError(t, f.queue.Retry(ctx, items[0].ID))
	got, err := f.store.GetItem(ctx, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatePending, got.State)
	assert.Zero(t, got.Attempts)
	assert.ErrorIs(t, f.queue.Retry(ctx, items[0].ID), ErrItemNotFailed)

	require.NoError(t, f.queue.Discard(ctx, items[0].ID))
	assert.Equal(t, 0, f.queue.Stats().Total())
}

func TestQueue_PermanentFailureBlocksEntity(t *testing.T) {
	f := newFixture(t, func(ctx context.Context, item *models.QueueItem) (*apiv1.MutationResponse, error) {
		if item.Operation == models.OperationCreate {
			return nil, &api.StatusError{StatusCode: 400, Message: "invalid"}
		}
		return &apiv1.MutationResponse{ID: item.ID, Applied: true}, nil
	})
	ctx := context.Background()

	created, err := f.queue.Enqueue(ctx, models.OperationCreate, entity("n1", models.EntityTypeNote))
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, models.OperationUpdate, entity("n1", models.EntityTypeNote))
	require.NoError(t, err)

	res, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Zero(t, res.Pushed)
	assert.Len(t, f.pusher.PushMutationCalls(), 1)

	// после удаления ошибочного элемента очередь продолжает работу
	require.NoError(t, f.queue.Discard(ctx, created.ID))
	res, err = f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pushed)
}

func TestQueue_OfflineDoesNotCountAttempt(t *testing.T) {
	f := newFixture(t, func(ctx context.Context, item *models.QueueItem) (*apiv1.MutationResponse, error) {
		return nil, fmt.Errorf("%w: connection refused", api.ErrOffline)
	})
	ctx := context.Background()

	_, err := f.queue.Enqueue(ctx, models.OperationCreate, entity("n1", models.EntityTypeNote))
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, models.OperationCreate, entity("n2", models.EntityTypeNote))
	require.NoError(t, err)

	res, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.False(t, f.monitor.Online())
	// после потери сети раздел останавливается
	assert.Len(t, f.pusher.PushMutationCalls(), 1)

	items, err := f.queue.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.ItemStatePending, items[0].State)
	assert.Zero(t, items[0].Attempts)

	// пока сеть недоступна, цикл не запускается
	res, err = f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.Len(t, f.pusher.PushMutationCalls(), 1)
}

func TestQueue_ConflictIsAcknowledged(t *testing.T) {
	f := newFixture(t, func(ctx context.Context, item *models.QueueItem) (*apiv1.MutationResponse, error) {
		return &apiv1.MutationResponse{ID: item.ID, Applied: false, UpdatedAt: 99}, nil
	})
	ctx := context.Background()

	_, err := f.queue.Enqueue(ctx, models.OperationUpdate, entity("n1", models.EntityTypeNote))
	require.NoError(t, err)

	res, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Conflicts)
	assert.Equal(t, 1, f.queue.Stats().Conflicts)
	assert.Equal(t, 0, f.queue.Stats().Total())
}

func TestQueue_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	f := newFixture(t, func(ctx context.Context, item *models.QueueItem) (*apiv1.MutationResponse, error) {
		started <- struct{}{}
		<-release
		return &apiv1.MutationResponse{ID: item.ID, Applied: true}, nil
	})
	ctx := context.Background()

	_, err := f.queue.Enqueue(ctx, models.OperationCreate, entity("n1", models.EntityTypeNote))
	require.NoError(t, err)

	done := make(chan DrainResult)
	go func() {
		res, _ := f.queue.Drain(ctx)
		done <- res
	}()
	<-started

	assert.Equal(t, DrainerSyncing, f.queue.Stats().Drainer)
	assert.Equal(t, 1, f.queue.Stats().InFlight)

	// элемент, добавленный во время цикла, ждёт следующего цикла
	_, err = f.queue.Enqueue(ctx, models.OperationCreate, entity("n2", models.EntityTypeNote))
	require.NoError(t, err)

	second, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, second.Skipped)

	assert.ErrorIs(t, f.queue.Discard(ctx, f.pusher.PushMutationCalls()[0].Item.ID), ErrItemInFlight)

	close(release)
	first := <-done
	assert.Equal(t, 1, first.Pushed)

	items, err := f.queue.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "n2", items[0].EntityID)
}

func TestQueue_PartitionsDrainAllTypes(t *testing.T) {
	f := newFixture(t, ack)
	ctx := context.Background()

	for _, et := range models.EntityTypes {
		_, err := f.queue.Enqueue(ctx, models.OperationCreate, entity("x-"+string(et), et))
		require.NoError(t, err)
	}

	res, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(models.EntityTypes), res.Pushed)
}

func TestQueue_InitRecoversInFlight(t *testing.T) {
	f := newFixture(t, ack)
	ctx := context.Background()

	item := &models.QueueItem{
		ID:         "q1",
		EntityID:   "n1",
		EntityType: models.EntityTypeNote,
		Operation:  models.OperationUpdate,
		State:      models.ItemStateInFlight,
	}
	require.NoError(t, f.store.AppendItem(ctx, item))

	require.NoError(t, f.queue.Init(ctx))
	got, err := f.store.GetItem(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatePending, got.State)
	assert.Equal(t, 1, f.queue.Stats().Pending)
}

func TestQueue_PendingEntityIDs(t *testing.T) {
	f := newFixture(t, ack)
	ctx := context.Background()

	_, err := f.queue.Enqueue(ctx, models.OperationUpdate, entity("n1", models.EntityTypeNote))
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, models.OperationUpdate, entity("f1", models.EntityTypeFolder))
	require.NoError(t, err)

	ids, err := f.queue.PendingEntityIDs(ctx, models.EntityTypeNote)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"n1": true}, ids)
}

func TestQueue_RunDrainsOnEnqueueAndReconnect(t *testing.T) {
	f := newFixture(t, ack)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.monitor.Set(false)
	go f.queue.Run(ctx)

	_, err := f.queue.Enqueue(ctx, models.OperationCreate, entity("n1", models.EntityTypeNote))
	require.NoError(t, err)

	// офлайн: ничего не отправлено
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, f.pusher.PushMutationCalls())

	f.monitor.Set(true)
	require.Eventually(t, func() bool {
		return f.queue.Stats().Total() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConfig_RetryDelay(t *testing.T) {
	cfg := Config{}
	want := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}
	for i, d := range want {
		assert.Equal(t, d, cfg.RetryDelay(i+1), "attempt %d", i+1)
	}
}
