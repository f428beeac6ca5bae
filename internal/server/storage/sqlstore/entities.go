package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/internal/server/storage"
)

// ListEntities returns all live entities of one type ordered by id.
func (s *Store) ListEntities(ctx context.Context, userID string, entityType models.EntityType) ([]*models.Entity, error) {
	query := s.rebind(`
		SELECT id, entity_type, data, indexes, updated_at
		FROM entities
		WHERE user_id = ? AND entity_type = ? AND deleted = 0
		ORDER BY id ASC
	`)

	rows, err := s.db.QueryContext(ctx, query, userID, string(entityType))
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entities := make([]*models.Entity, 0)
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entities, nil
}

// GetEntity returns one live entity or storage.ErrEntryNotFound.
func (s *Store) GetEntity(ctx context.Context, userID string, entityType models.EntityType, id string) (*models.Entity, error) {
	query := s.rebind(`
		SELECT id, entity_type, data, indexes, updated_at
		FROM entities
		WHERE user_id = ? AND entity_type = ? AND id = ? AND deleted = 0
	`)

	e, err := scanEntity(s.db.QueryRowContext(ctx, query, userID, string(entityType), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

// ApplyMutation applies m in one transaction.
// A write older than the stored copy is acknowledged with Applied=false.
// Deletes leave a tombstone so that an older create can not resurrect the entity.
func (s *Store) ApplyMutation(ctx context.Context, userID string, m *storage.Mutation) (*storage.MutationResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Повторная доставка: возвращаем сохранённый результат
	recorded, err := s.recordedResult(ctx, tx, userID, m.ID)
	if err != nil {
		return nil, err
	}
	if recorded != nil {
		return recorded, nil
	}

	current, exists, err := s.currentTimestamp(ctx, tx, userID, m.EntityType, m.EntityID)
	if err != nil {
		return nil, err
	}

	result := &storage.MutationResult{Applied: true, UpdatedAt: m.UpdatedAt}
	if exists && current > m.UpdatedAt {
		result = &storage.MutationResult{Applied: false, UpdatedAt: current}
	} else if err := s.upsert(ctx, tx, userID, m); err != nil {
		return nil, err
	}

	insert := s.rebind(`
		INSERT INTO mutations (id, user_id, entity_type, entity_id, operation, applied, updated_at, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = tx.ExecContext(ctx, insert,
		m.ID, userID, string(m.EntityType), m.EntityID, string(m.Operation),
		boolToInt(result.Applied), result.UpdatedAt, s.now().UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record mutation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit mutation: %w", err)
	}

	return result, nil
}

func (s *Store) recordedResult(ctx context.Context, tx *sql.Tx, userID, mutationID string) (*storage.MutationResult, error) {
	query := s.rebind(`SELECT applied, updated_at FROM mutations WHERE id = ? AND user_id = ?`)

	var applied int
	var updatedAt int64
	err := tx.QueryRowContext(ctx, query, mutationID, userID).Scan(&applied, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up mutation: %w", err)
	}
	return &storage.MutationResult{Applied: intToBool(applied), UpdatedAt: updatedAt}, nil
}

func (s *Store) currentTimestamp(ctx context.Context, tx *sql.Tx, userID string, entityType models.EntityType, id string) (int64, bool, error) {
	query := s.rebind(`SELECT updated_at FROM entities WHERE user_id = ? AND entity_type = ? AND id = ?`)

	var updatedAt int64
	err := tx.QueryRowContext(ctx, query, userID, string(entityType), id).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read entity timestamp: %w", err)
	}
	return updatedAt, true, nil
}

func (s *Store) upsert(ctx context.Context, tx *sql.Tx, userID string, m *storage.Mutation) error {
	var data, indexes string
	deleted := m.Operation == models.OperationDelete
	if !deleted {
		data = string(m.Entity.Data)
		if len(m.Entity.Indexes) > 0 {
			raw, err := json.Marshal(m.Entity.Indexes)
			if err != nil {
				return fmt.Errorf("failed to marshal indexes: %w", err)
			}
			indexes = string(raw)
		}
	}

	query := s.rebind(`
		INSERT INTO entities (user_id, entity_type, id, data, indexes, updated_at, deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, entity_type, id) DO UPDATE SET
			data = excluded.data,
			indexes = excluded.indexes,
			updated_at = excluded.updated_at,
			deleted = excluded.deleted
	`)
	_, err := tx.ExecContext(ctx, query,
		userID, string(m.EntityType), m.EntityID, data, indexes, m.UpdatedAt, boolToInt(deleted),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entity: %w", err)
	}
	return nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*models.Entity, error) {
	var (
		e                    models.Entity
		entityType           string
		data, indexesEncoded string
	)
	if err := row.Scan(&e.ID, &entityType, &data, &indexesEncoded, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan entity: %w", err)
	}

	e.Type = models.EntityType(entityType)
	if data != "" {
		e.Data = json.RawMessage(data)
	}
	if indexesEncoded != "" {
		if err := json.Unmarshal([]byte(indexesEncoded), &e.Indexes); err != nil {
			return nil, fmt.Errorf("failed to decode indexes of %s: %w", e.ID, err)
		}
	}
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
