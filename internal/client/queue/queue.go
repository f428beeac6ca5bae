// Package queue implements the durable outbound sync queue.
//
// Every local mutation becomes a QueueItem. A drain cycle pushes pending
// items to the remote, one partition (entity type) per goroutine, strictly
// in enqueue order inside a partition. Items of one entity are never
// reordered: an item that cannot be sent yet blocks every later item of
// the same entity for the rest of the cycle.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/notesync/internal/client/api"
	"github.com/iudanet/notesync/internal/client/connectivity"
	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/client/stream"
	"github.com/iudanet/notesync/internal/models"
)

var (
	// ErrItemInFlight is returned when the user touches an item being sent.
	ErrItemInFlight = errors.New("queue item is being sent")
	// ErrItemNotFailed is returned by Retry for items that are not in error state.
	ErrItemNotFailed = errors.New("queue item is not in error state")
)

// DrainerStatus is the state of the background drainer.
type DrainerStatus string

const (
	DrainerIdle    DrainerStatus = "idle"
	DrainerSyncing DrainerStatus = "syncing"
	DrainerError   DrainerStatus = "error"
)

// Stats is a summary of the queue published after every change.
type Stats struct {
	Drainer     DrainerStatus
	LastError   string
	Pending     int
	InFlight    int
	Failed      int
	Conflicts   int   // Conflicts мутации, отклонённые сервером как устаревшие
	LastDrainAt int64 // LastDrainAt epoch ms окончания последнего цикла
}

// Total returns the number of items in the queue.
func (s Stats) Total() int {
	return s.Pending + s.InFlight + s.Failed
}

// DrainResult reports what one drain cycle did.
type DrainResult struct {
	Pushed    int
	Conflicts int
	Retrying  int // Retrying перенесены на следующую попытку
	Failed    int // Failed переведены в терминальное состояние error
	Offline   bool
	Skipped   bool // Skipped цикл уже выполнялся
}

// Queue is the durable outbound mutation queue.
type Queue struct {
	store   storage.QueueStorage
	pusher  Pusher
	monitor *connectivity.Monitor
	logger  *slog.Logger
	now     func() time.Time
	stats   *stream.Subject[Stats]
	trigger chan struct{}
	cfg     Config

	draining  sync.Mutex
	conflicts atomic.Int64
}

// Option configures Queue.
type Option func(*Queue)

// WithClock overrides the clock used for enqueue times and backoff.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		q.now = now
	}
}

// New creates a queue. Call Init before use.
func New(store storage.QueueStorage, pusher Pusher, monitor *connectivity.Monitor, cfg Config, logger *slog.Logger, opts ...Option) *Queue {
	q := &Queue{
		store:   store,
		pusher:  pusher,
		monitor: monitor,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg.withDefaults(),
		stats:   stream.NewDistinctSubject(Stats{Drainer: DrainerIdle}),
		trigger: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Init recovers items left in flight by a previous crash.
func (q *Queue) Init(ctx context.Context) error {
	n, err := q.store.ResetInFlight(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover queue: %w", err)
	}
	if n > 0 {
		q.logger.Info("recovered interrupted queue items", "count", n)
	}
	return q.refresh(ctx)
}

// Enqueue records a mutation of entity. The entity is serialized as it is
// now, including its UpdatedAt.
func (q *Queue) Enqueue(ctx context.Context, op models.Operation, entity *models.Entity) (*models.QueueItem, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("unknown operation: %q", op)
	}
	if entity == nil || entity.ID == "" || !entity.Type.Valid() {
		return nil, fmt.Errorf("entity id and type are required")
	}

	payload, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	item := &models.QueueItem{
		ID:         uuid.New().String(),
		EntityID:   entity.ID,
		EntityType: entity.Type,
		Operation:  op,
		State:      models.ItemStatePending,
		Payload:    payload,
		EnqueuedAt: q.now().UnixMilli(),
	}
	if err := q.store.AppendItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to enqueue: %w", err)
	}

	q.logger.Debug("mutation enqueued",
		"item_id", item.ID,
		"entity_type", item.EntityType,
		"entity_id", item.EntityID,
		"operation", item.Operation,
	)

	// Элемент уже сохранён: ошибка пересчёта статистики не отменяет его
	if err := q.refresh(ctx); err != nil {
		q.logger.Warn("failed to refresh queue stats", "error", err)
	}
	q.Trigger()
	return item, nil
}

// Items returns every queued item in enqueue order.
func (q *Queue) Items(ctx context.Context) ([]*models.QueueItem, error) {
	return q.store.ListItems(ctx)
}

// PendingEntityIDs returns ids of entities that still have queued items of
// the given type. The reconciler must not overwrite or delete them.
func (q *Queue) PendingEntityIDs(ctx context.Context, entityType models.EntityType) (map[string]bool, error) {
	items, err := q.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool)
	for _, item := range items {
		if item.EntityType == entityType {
			ids[item.EntityID] = true
		}
	}
	return ids, nil
}

// Retry moves a failed item back to pending with a fresh attempt budget.
func (q *Queue) Retry(ctx context.Context, id string) error {
	item, err := q.store.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if item.State != models.ItemStateError {
		return ErrItemNotFailed
	}

	item.State = models.ItemStatePending
	item.Attempts = 0
	item.NextAttemptAt = 0
	item.LastError = ""
	if err := q.store.UpdateItem(ctx, item); err != nil {
		return fmt.Errorf("failed to retry item: %w", err)
	}

	q.logger.Info("queue item retried by user", "item_id", id)
	if err := q.refresh(ctx); err != nil {
		return err
	}
	q.Trigger()
	return nil
}

// Discard removes an item that is not being sent.
func (q *Queue) Discard(ctx context.Context, id string) error {
	item, err := q.store.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if item.State == models.ItemStateInFlight {
		return ErrItemInFlight
	}
	if err := q.store.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("failed to discard item: %w", err)
	}

	q.logger.Info("queue item discarded by user",
		"item_id", id,
		"entity_id", item.EntityID,
		"state", item.State,
	)
	if err := q.refresh(ctx); err != nil {
		return err
	}
	// снятие блокировки может разрешить отправку следующих элементов
	q.Trigger()
	return nil
}

// Stats returns the latest summary.
func (q *Queue) Stats() Stats {
	return q.stats.Get()
}

// Subscribe calls fn with the current summary and on every change.
func (q *Queue) Subscribe(fn func(Stats)) (dispose func()) {
	return q.stats.Subscribe(fn)
}

// Trigger asks Run for a drain cycle. It never blocks.
func (q *Queue) Trigger() {
	select {
	case q.trigger <- struct{}{}:
	default:
	}
}

// Run drains on trigger, on a timer and when connectivity returns, until
// ctx is done.
func (q *Queue) Run(ctx context.Context) {
	dispose := q.monitor.Subscribe(func(online bool) {
		if online {
			q.Trigger()
		}
	})
	defer dispose()

	ticker := time.NewTicker(q.cfg.DrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.trigger:
		case <-ticker.C:
		}

		if !q.monitor.Online() {
			continue
		}
		if _, err := q.Drain(ctx); err != nil && ctx.Err() == nil {
			q.logger.Error("drain cycle failed", "error", err)
		}
	}
}

// Drain runs one drain cycle. Concurrent calls do not overlap: a call made
// while a cycle is running returns Skipped and schedules another cycle.
func (q *Queue) Drain(ctx context.Context) (DrainResult, error) {
	if !q.draining.TryLock() {
		q.Trigger()
		return DrainResult{Skipped: true}, nil
	}
	defer q.draining.Unlock()

	if !q.monitor.Online() {
		return DrainResult{Offline: true}, nil
	}

	items, err := q.store.ListItems(ctx)
	if err != nil {
		return DrainResult{}, fmt.Errorf("failed to list queue: %w", err)
	}
	if len(items) == 0 {
		return DrainResult{}, nil
	}

	q.setDrainer(DrainerSyncing, "")

	// Разделы по типу сущности, порядок внутри раздела сохраняется
	var order []models.EntityType
	partitions := make(map[models.EntityType][]*models.QueueItem)
	for _, item := range items {
		if _, ok := partitions[item.EntityType]; !ok {
			order = append(order, item.EntityType)
		}
		partitions[item.EntityType] = append(partitions[item.EntityType], item)
	}

	var (
		mu      sync.Mutex
		result  DrainResult
		offline atomic.Bool
		g       errgroup.Group
	)
	for _, entityType := range order {
		part := partitions[entityType]
		g.Go(func() error {
			r, err := q.drainPartition(ctx, part, &offline)
			mu.Lock()
			result.Pushed += r.Pushed
			result.Conflicts += r.Conflicts
			result.Retrying += r.Retrying
			result.Failed += r.Failed
			mu.Unlock()
			return err
		})
	}
	err = g.Wait()
	result.Offline = offline.Load()

	if result.Offline {
		q.monitor.Set(false)
		q.logger.Warn("drain paused: server unreachable")
	}

	drainer, lastErr := DrainerIdle, ""
	if err != nil {
		drainer, lastErr = DrainerError, err.Error()
	}
	q.stats.Update(func(s Stats) Stats {
		s.Drainer = drainer
		s.LastError = lastErr
		s.LastDrainAt = q.now().UnixMilli()
		return s
	})
	if refreshErr := q.refresh(context.WithoutCancel(ctx)); refreshErr != nil && err == nil {
		err = refreshErr
	}

	q.logger.Info("drain cycle finished",
		"pushed", result.Pushed,
		"conflicts", result.Conflicts,
		"retrying", result.Retrying,
		"failed", result.Failed,
		"offline", result.Offline,
	)
	return result, err
}

// drainPartition отправляет элементы одного раздела строго последовательно
func (q *Queue) drainPartition(ctx context.Context, items []*models.QueueItem, offline *atomic.Bool) (DrainResult, error) {
	var result DrainResult
	blocked := make(map[string]bool)

	for _, item := range items {
		if offline.Load() || ctx.Err() != nil {
			break
		}
		if blocked[item.EntityID] {
			continue
		}
		if item.State == models.ItemStateError || item.NextAttemptAt > q.now().UnixMilli() {
			blocked[item.EntityID] = true
			continue
		}

		outcome, err := q.send(ctx, item)
		if err != nil {
			return result, err
		}

		switch outcome {
		case outcomePushed:
			result.Pushed++
		case outcomeConflict:
			result.Pushed++
			result.Conflicts++
		case outcomeRetry:
			result.Retrying++
			blocked[item.EntityID] = true
		case outcomeFailed:
			result.Failed++
			blocked[item.EntityID] = true
		case outcomeOffline:
			offline.Store(true)
		case outcomeCanceled:
			return result, nil
		case outcomeGone:
		}
	}

	return result, nil
}

type outcome int

const (
	outcomePushed outcome = iota
	outcomeConflict
	outcomeRetry
	outcomeFailed
	outcomeOffline
	outcomeCanceled
	outcomeGone // outcomeGone элемент удалён пользователем во время цикла
)

// send переводит элемент в in_flight, отправляет и фиксирует результат
func (q *Queue) send(ctx context.Context, item *models.QueueItem) (outcome, error) {
	item.State = models.ItemStateInFlight
	if err := q.store.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return outcomeGone, nil
		}
		return 0, fmt.Errorf("failed to mark item in flight: %w", err)
	}
	_ = q.refresh(ctx)

	resp, pushErr := q.pusher.PushMutation(ctx, item)

	// итог записываем даже если ctx уже отменён
	storeCtx := context.WithoutCancel(ctx)

	if pushErr == nil {
		if err := q.store.DeleteItem(storeCtx, item.ID); err != nil && !errors.Is(err, storage.ErrItemNotFound) {
			return 0, fmt.Errorf("failed to remove acknowledged item: %w", err)
		}
		if resp != nil && !resp.Applied {
			q.conflicts.Add(1)
			q.logger.Info("server kept newer copy",
				"item_id", item.ID,
				"entity_id", item.EntityID,
				"server_updated_at", resp.UpdatedAt,
			)
			return outcomeConflict, nil
		}
		q.logger.Debug("mutation pushed", "item_id", item.ID, "entity_id", item.EntityID)
		return outcomePushed, nil
	}

	switch {
	case errors.Is(pushErr, api.ErrOffline), ctx.Err() != nil:
		// попытка не засчитывается
		item.State = models.ItemStatePending
		if err := q.store.UpdateItem(storeCtx, item); err != nil {
			return 0, fmt.Errorf("failed to return item to pending: %w", err)
		}
		if ctx.Err() != nil {
			return outcomeCanceled, nil
		}
		return outcomeOffline, nil

	case errors.Is(pushErr, api.ErrPermanent):
		item.State = models.ItemStateError
		item.LastError = pushErr.Error()
		item.Attempts++
		if err := q.store.UpdateItem(storeCtx, item); err != nil {
			return 0, fmt.Errorf("failed to mark item failed: %w", err)
		}
		q.logger.Error("mutation rejected by server",
			"item_id", item.ID,
			"entity_id", item.EntityID,
			"error", pushErr,
		)
		return outcomeFailed, nil

	default:
		item.Attempts++
		item.LastError = pushErr.Error()
		if item.Attempts >= q.cfg.MaxAttempts {
			item.State = models.ItemStateError
			if err := q.store.UpdateItem(storeCtx, item); err != nil {
				return 0, fmt.Errorf("failed to mark item failed: %w", err)
			}
			q.logger.Error("mutation failed, retries exhausted",
				"item_id", item.ID,
				"entity_id", item.EntityID,
				"attempts", item.Attempts,
				"error", pushErr,
			)
			return outcomeFailed, nil
		}

		delay := q.cfg.RetryDelay(item.Attempts)
		item.State = models.ItemStatePending
		item.NextAttemptAt = q.now().Add(delay).UnixMilli()
		if err := q.store.UpdateItem(storeCtx, item); err != nil {
			return 0, fmt.Errorf("failed to schedule retry: %w", err)
		}
		q.logger.Warn("mutation failed, will retry",
			"item_id", item.ID,
			"entity_id", item.EntityID,
			"attempts", item.Attempts,
			"retry_in", delay,
			"error", pushErr,
		)
		return outcomeRetry, nil
	}
}

func (q *Queue) setDrainer(status DrainerStatus, lastErr string) {
	q.stats.Update(func(s Stats) Stats {
		s.Drainer = status
		s.LastError = lastErr
		return s
	})
}

// refresh пересчитывает счётчики по содержимому хранилища
func (q *Queue) refresh(ctx context.Context) error {
	items, err := q.store.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to read queue: %w", err)
	}

	var pending, inFlight, failed int
	for _, item := range items {
		switch item.State {
		case models.ItemStatePending:
			pending++
		case models.ItemStateInFlight:
			inFlight++
		case models.ItemStateError:
			failed++
		}
	}

	conflicts := int(q.conflicts.Load())
	q.stats.Update(func(s Stats) Stats {
		s.Pending = pending
		s.InFlight = inFlight
		s.Failed = failed
		s.Conflicts = conflicts
		return s
	})
	return nil
}
