// Package db provides PostgreSQL storage for parsed resumes.
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

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// schemaSQL creates the tables used by this package. structured_resumes is
// written by the document extraction pipeline; this service only reads it,
// apart from UpsertStructuredResume which exists for backfills and tests.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS parsed_resumes (
	id           UUID PRIMARY KEY,
	source       TEXT NOT NULL DEFAULT '',
	content_hash TEXT NOT NULL,
	raw_text     TEXT NOT NULL,
	document     JSONB NOT NULL,
	origin       TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_parsed_resumes_content_hash ON parsed_resumes (content_hash);
CREATE INDEX IF NOT EXISTS idx_parsed_resumes_created_at ON parsed_resumes (created_at DESC);

CREATE TABLE IF NOT EXISTS structured_resumes (
	resume_id  UUID PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates missing tables and indexes.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
