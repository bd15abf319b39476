// Package db provides PostgreSQL storage for the conversation turn log.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS conversation_turns (
	id               UUID PRIMARY KEY,
	session_id       TEXT NOT NULL,
	user_message     TEXT NOT NULL,
	bot_response     TEXT NOT NULL,
	intent           TEXT NOT NULL DEFAULT '',
	client_id        TEXT,
	product_id       TEXT,
	recommended_size TEXT,
	confidence       DOUBLE PRECISION,
	fallback_used    BOOLEAN NOT NULL DEFAULT FALSE,
	is_error         BOOLEAN NOT NULL DEFAULT FALSE,
	metadata         JSONB,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS conversation_turns_session_idx
	ON conversation_turns (session_id, created_at);
`

// EnsureSchema creates the turn log table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
