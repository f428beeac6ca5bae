// Package sync pulls the remote snapshot and reconciles the local store.
// It never pushes: outbound changes travel through the queue package.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/internal/reconcile"
)

//go:generate moq -out service_mock.go . Service
//go:generate moq -out fetcher_mock.go . Fetcher
//go:generate moq -out pending_mock.go . PendingSource

// Service определяет интерфейс для sync.Service
type Service interface {
	// ReconcileNow pulls one entity type and applies the remote state locally
	ReconcileNow(ctx context.Context, entityType models.EntityType) (*Result, error)

	// ReconcileAll reconciles every entity type in dependency order
	ReconcileAll(ctx context.Context) (*Result, error)
}

// Fetcher returns the full remote collection of one entity type.
type Fetcher interface {
	FetchEntities(ctx context.Context, entityType models.EntityType) ([]*models.Entity, error)
}

// PendingSource reports entities that still have unsent local mutations.
type PendingSource interface {
	PendingEntityIDs(ctx context.Context, entityType models.EntityType) (map[string]bool, error)
}

// Result contains reconcile operation results
type Result struct {
	Added   int // Added записи, полученные с сервера впервые
	Updated int // Updated записи, где серверная версия новее
	Deleted int // Deleted локальные записи, которых нет на сервере
	Skipped int // Skipped записи с неотправленными локальными изменениями
}

func (r *Result) add(other *Result) {
	r.Added += other.Added
	r.Updated += other.Updated
	r.Deleted += other.Deleted
	r.Skipped += other.Skipped
}

type service struct {
	fetcher         Fetcher
	entities        storage.EntityStorage
	metadataStorage storage.MetadataStorage
	pending         PendingSource
	logger          *slog.Logger
	now             func() time.Time
	flight          singleflight.Group
}

// NewService creates a new sync service
func NewService(
	fetcher Fetcher,
	entities storage.EntityStorage,
	metadataStorage storage.MetadataStorage,
	pending PendingSource,
	logger *slog.Logger,
) Service {
	return &service{
		fetcher:         fetcher,
		entities:        entities,
		metadataStorage: metadataStorage,
		pending:         pending,
		logger:          logger,
		now:             time.Now,
	}
}

// ReconcileNow reconciles one entity type. Concurrent calls for the same
// type share a single run.
func (s *service) ReconcileNow(ctx context.Context, entityType models.EntityType) (*Result, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("unknown entity type: %q", entityType)
	}

	v, err, _ := s.flight.Do(string(entityType), func() (interface{}, error) {
		return s.reconcile(ctx, entityType)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// ReconcileAll reconciles every entity type. It stops at the first failure.
func (s *service) ReconcileAll(ctx context.Context) (*Result, error) {
	total := &Result{}
	for _, entityType := range models.EntityTypes {
		r, err := s.ReconcileNow(ctx, entityType)
		if err != nil {
			return total, err
		}
		total.add(r)
	}
	return total, nil
}

func (s *service) reconcile(ctx context.Context, entityType models.EntityType) (*Result, error) {
	s.logger.Debug("Starting reconcile", "entity_type", entityType)

	// Локальный снимок и очередь читаем до запроса к серверу: запись,
	// созданная и отправленная во время запроса, в снимок не попадёт
	pending, err := s.pending.PendingEntityIDs(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending mutations: %w", err)
	}

	local, err := s.entities.ListAll(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list local %s: %w", entityType, err)
	}

	remote, err := s.fetcher.FetchEntities(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote %s: %w", entityType, err)
	}

	// Записи с неотправленными изменениями не трогаем, иначе сервер
	// затрёт правку до того, как очередь её доставит
	after, err := s.pending.PendingEntityIDs(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending mutations: %w", err)
	}
	if pending == nil {
		pending = make(map[string]bool, len(after))
	}
	maps.Copy(pending, after)

	seen := make(map[string]int64, len(local))
	for _, e := range local {
		seen[e.ID] = e.UpdatedAt
	}

	diff := reconcile.Reconcile(local, remote)
	result := &Result{}

	// skip сообщает, что запись ждёт отправки или изменилась после снимка
	skip := func(id string) (bool, error) {
		if pending[id] {
			return true, nil
		}
		cur, err := s.entities.Get(ctx, entityType, id)
		if err != nil {
			return false, fmt.Errorf("failed to read %s %s: %w", entityType, id, err)
		}
		ts, existed := seen[id]
		if cur == nil {
			return existed, nil
		}
		return !existed || cur.UpdatedAt != ts, nil
	}

	for _, e := range diff.ToAdd {
		if ok, err := skip(e.ID); err != nil {
			return nil, err
		} else if ok {
			result.Skipped++
			continue
		}
		if err := s.entities.PutVerbatim(ctx, e); err != nil {
			return nil, fmt.Errorf("failed to add %s %s: %w", entityType, e.ID, err)
		}
		result.Added++
	}

	for _, e := range diff.ToUpdate {
		if ok, err := skip(e.ID); err != nil {
			return nil, err
		} else if ok {
			result.Skipped++
			continue
		}
		if err := s.entities.PutVerbatim(ctx, e); err != nil {
			return nil, fmt.Errorf("failed to update %s %s: %w", entityType, e.ID, err)
		}
		result.Updated++
	}

	for _, id := range diff.ToDelete {
		if ok, err := skip(id); err != nil {
			return nil, err
		} else if ok {
			result.Skipped++
			continue
		}
		if err := s.entities.Delete(ctx, entityType, id); err != nil {
			return nil, fmt.Errorf("failed to delete %s %s: %w", entityType, id, err)
		}
		result.Deleted++
	}

	if err := s.metadataStorage.SaveLastSyncTimestamp(ctx, entityType, s.now().UnixMilli()); err != nil {
		s.logger.Warn("Failed to save last sync timestamp", "entity_type", entityType, "error", err)
		// Не прерываем синхронизацию из-за ошибки сохранения timestamp
	}

	s.logger.Info("Reconcile completed",
		"entity_type", entityType,
		"remote", len(remote),
		"local", len(local),
		"added", result.Added,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"skipped", result.Skipped,
	)

	return result, nil
}
