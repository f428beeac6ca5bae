// Package engine is the explicit context object of the client: it owns
// the local store adapters, the sync queue, the reconciler and every open
// room session, and tears them down together.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/notesync/internal/client/api"
	"github.com/iudanet/notesync/internal/client/collab"
	"github.com/iudanet/notesync/internal/client/connectivity"
	"github.com/iudanet/notesync/internal/client/queue"
	"github.com/iudanet/notesync/internal/client/status"
	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/client/stream"
	syncsvc "github.com/iudanet/notesync/internal/client/sync"
	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/internal/validation"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("engine is closed")

// Store is the local persistence the engine needs.
type Store interface {
	storage.EntityStorage
	storage.QueueStorage
	storage.MetadataStorage
}

// Remote is the remote persistence API.
type Remote interface {
	queue.Pusher
	syncsvc.Fetcher
	connectivity.Pinger
}

// Config configures the engine.
type Config struct {
	UserID            string
	UserName          string
	Queue             queue.Config
	ReconcileInterval time.Duration // ReconcileInterval 0 отключает периодическую сверку
	ProbeInterval     time.Duration
	HandshakeTimeout  time.Duration
}

// Engine wires the sync components together.
type Engine struct {
	store     Store
	transport collab.Transport
	logger    *slog.Logger
	now       func() time.Time

	monitor *connectivity.Monitor
	prober  *connectivity.Prober
	queue   *queue.Queue
	sync    syncsvc.Service
	status  *status.Aggregator

	cancel   context.CancelFunc
	group    *errgroup.Group
	sessions map[*collab.Session]struct{}
	cfg      Config
	mu       sync.Mutex
	started  bool
	closed   bool
}

// New constructs the engine. It performs no I/O; call Start or Init.
func New(store Store, remote Remote, transport collab.Transport, cfg Config, logger *slog.Logger) *Engine {
	monitor := connectivity.NewMonitor(false)
	q := queue.New(store, remote, monitor, cfg.Queue, logger)

	e := &Engine{
		store:     store,
		transport: transport,
		logger:    logger,
		now:       time.Now,
		monitor:   monitor,
		prober:    connectivity.NewProber(remote, monitor, cfg.ProbeInterval, logger),
		queue:     q,
		sync:      syncsvc.NewService(remote, store, store, q, logger),
		status:    status.NewAggregator(),
		sessions:  make(map[*collab.Session]struct{}),
		cfg:       cfg,
	}
	e.status.WatchQueue(q)
	return e
}

// Init recovers the queue after a crash. Start calls it.
func (e *Engine) Init(ctx context.Context) error {
	return e.queue.Init(ctx)
}

// Start initializes the queue and launches the background loops:
// connectivity probing, queue draining and periodic reconciliation.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.started {
		return nil
	}

	if err := e.Init(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		e.prober.Run(gctx)
		return nil
	})
	g.Go(func() error {
		e.queue.Run(gctx)
		return nil
	})
	if e.cfg.ReconcileInterval > 0 {
		g.Go(func() error {
			e.reconcileLoop(gctx)
			return nil
		})
	}

	e.cancel = cancel
	e.group = g
	e.started = true
	e.logger.Info("sync engine started")
	return nil
}

// Close stops background work and leaves every room. It is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	cancel, group := e.cancel, e.group
	sessions := make([]*collab.Session, 0, len(e.sessions))
	for s := range e.sessions {
		sessions = append(sessions, s)
	}
	e.mu.Unlock()

	if cancel != nil {
		cancel()
		_ = group.Wait()
	}
	for _, s := range sessions {
		s.Leave()
	}
	e.status.Close()
	e.logger.Info("sync engine stopped")
}

// EnqueueMutation writes entity to the local store and queues it for the
// remote. Create and update stamp UpdatedAt; delete removes the local copy.
// When the mutation cannot be queued the local write is rolled back.
func (e *Engine) EnqueueMutation(ctx context.Context, op models.Operation, entity *models.Entity) (*models.QueueItem, error) {
	if entity == nil || entity.ID == "" || !entity.Type.Valid() {
		return nil, fmt.Errorf("entity id and type are required")
	}
	if !op.Valid() {
		return nil, fmt.Errorf("unknown operation: %q", op)
	}

	prev, err := e.store.Get(ctx, entity.Type, entity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s: %w", entity.Type, entity.ID, err)
	}

	switch op {
	case models.OperationCreate, models.OperationUpdate:
		if err := e.store.Put(ctx, entity); err != nil {
			return nil, fmt.Errorf("failed to write %s %s: %w", entity.Type, entity.ID, err)
		}
	case models.OperationDelete:
		if err := e.store.Delete(ctx, entity.Type, entity.ID); err != nil {
			return nil, fmt.Errorf("failed to delete %s %s: %w", entity.Type, entity.ID, err)
		}
		entity.UpdatedAt = e.now().UnixMilli()
	}

	item, err := e.queue.Enqueue(ctx, op, entity)
	if err != nil {
		e.restore(ctx, entity.Type, entity.ID, prev)
		return nil, err
	}
	return item, nil
}

// restore returns the local record to prev, or removes it when prev is nil.
func (e *Engine) restore(ctx context.Context, entityType models.EntityType, id string, prev *models.Entity) {
	ctx = context.WithoutCancel(ctx)

	var err error
	if prev == nil {
		err = e.store.Delete(ctx, entityType, id)
	} else {
		err = e.store.PutVerbatim(ctx, prev)
	}
	if err != nil {
		e.logger.Error("failed to roll back local write",
			"entity_type", entityType,
			"entity_id", id,
			"error", err,
		)
	}
}

// ReconcileNow pulls the remote snapshot of one type into the local store.
func (e *Engine) ReconcileNow(ctx context.Context, entityType models.EntityType) (*syncsvc.Result, error) {
	res, err := e.sync.ReconcileNow(ctx, entityType)
	e.observeRemoteError(err)
	return res, err
}

// ReconcileAll reconciles every entity type.
func (e *Engine) ReconcileAll(ctx context.Context) (*syncsvc.Result, error) {
	res, err := e.sync.ReconcileAll(ctx)
	e.observeRemoteError(err)
	return res, err
}

// SyncNow checks connectivity, drains the queue once and reconciles all
// types. Offline is not an error: the drain result reports it.
func (e *Engine) SyncNow(ctx context.Context) (queue.DrainResult, *syncsvc.Result, error) {
	if !e.prober.Check(ctx) {
		return queue.DrainResult{Offline: true}, nil, nil
	}

	drained, err := e.queue.Drain(ctx)
	if err != nil {
		return drained, nil, fmt.Errorf("failed to drain queue: %w", err)
	}
	if drained.Offline {
		return drained, nil, nil
	}

	res, err := e.ReconcileAll(ctx)
	return drained, res, err
}

// QueueItems lists every queued mutation.
func (e *Engine) QueueItems(ctx context.Context) ([]*models.QueueItem, error) {
	return e.queue.Items(ctx)
}

// Retry moves a failed queue item back to pending.
func (e *Engine) Retry(ctx context.Context, id string) error {
	return e.queue.Retry(ctx, id)
}

// Discard drops a queue item the user gave up on.
func (e *Engine) Discard(ctx context.Context, id string) error {
	return e.queue.Discard(ctx, id)
}

// Online reports the last known connectivity.
func (e *Engine) Online() bool {
	return e.monitor.Online()
}

// SyncStatus streams the aggregated sync status.
func (e *Engine) SyncStatus() stream.Observable[status.Status] {
	return e.status.Status()
}

// AcknowledgeError clears a reported auth failure from the status.
func (e *Engine) AcknowledgeError() {
	e.status.Acknowledge()
}

// JoinRoom opens a room session and waits for the welcome. Presence
// defaults to the configured user. The session is closed with the engine.
func (e *Engine) JoinRoom(ctx context.Context, roomID string, role models.Role, presence models.Presence) (*collab.Session, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role: %q", role)
	}
	if err := validation.ValidateID("room id", roomID); err != nil {
		return nil, err
	}
	if presence.UserID == "" {
		presence.UserID = e.cfg.UserID
	}
	if presence.UserName == "" {
		presence.UserName = e.cfg.UserName
	}

	s := collab.NewSession(e.transport, collab.Options{
		RoomID:           roomID,
		Role:             role,
		Presence:         presence,
		HandshakeTimeout: e.cfg.HandshakeTimeout,
	}, e.logger)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	e.sessions[s] = struct{}{}
	e.mu.Unlock()

	e.status.WatchSession(s)
	s.Track(func() {
		e.mu.Lock()
		delete(e.sessions, s)
		e.mu.Unlock()
	})

	if err := s.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to join room %s: %w", roomID, err)
	}
	return s, nil
}

func (e *Engine) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !e.monitor.Online() {
			continue
		}
		if _, err := e.ReconcileAll(ctx); err != nil && ctx.Err() == nil {
			e.logger.Warn("periodic reconcile failed", "error", err)
		}
	}
}

// observeRemoteError surfaces rejected credentials in the sync status.
func (e *Engine) observeRemoteError(err error) {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		e.status.ReportAuthFailure(err)
	}
}
