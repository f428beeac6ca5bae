// Package postgres opens the server entity storage on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/iudanet/notesync/internal/server/storage/sqlstore"
)

// Storage represents PostgreSQL storage implementation
type Storage struct {
	*sqlstore.Store
}

// New connects to databaseURL and applies migrations.
func New(ctx context.Context, databaseURL string) (*Storage, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(20)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store, err := sqlstore.New(ctx, db, sqlstore.DialectPostgres)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{Store: store}, nil
}
