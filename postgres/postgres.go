// Package postgres provides PostgreSQL-backed storage for resumekit state
// using github.com/jackc/pgx/v4.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/resumekit"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DB represents a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
	dsn  string
}

// NewDB creates a new DB for the given connection string.
func NewDB(dsn string) *DB {
	return &DB{dsn: dsn}
}

// Open connects and creates the schema if needed.
func (db *DB) Open(ctx context.Context) error {
	if db.dsn == "" {
		return resumekit.Errorf(resumekit.EINVALID, "database URL required")
	}
	pool, err := pgxpool.Connect(ctx, db.dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS resumekit_kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		pool.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	db.pool = pool
	return nil
}

// Close closes the pool.
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// Ensure KeyValueStore implements resumekit.KeyValueStore at compile time.
var _ resumekit.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore implements resumekit.KeyValueStore on the resumekit_kv
// table.
type KeyValueStore struct {
	db *DB
}

// NewKeyValueStore creates a new KeyValueStore.
func NewKeyValueStore(db *DB) *KeyValueStore {
	return &KeyValueStore{db: db}
}

// Get returns the value stored under key.
func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.pool.QueryRow(ctx, `SELECT value FROM resumekit_kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return resumekit.Errorf(resumekit.EINVALID, "key required")
	}
	_, err := s.db.pool.Exec(ctx, `
		INSERT INTO resumekit_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	return err
}

// Clear removes key. Clearing a missing key is not an error.
func (s *KeyValueStore) Clear(ctx context.Context, key string) error {
	_, err := s.db.pool.Exec(ctx, `DELETE FROM resumekit_kv WHERE key = $1`, key)
	return err
}
