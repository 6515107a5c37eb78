// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

var ErrUnknownType = errors.New("unknown database type")

// Open connects to the database of the given type and verifies the
// connection.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite, "":
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == "sqlite" {
		// One writer at a time; also keeps ":memory:" on a single connection.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Queue position (single row)
CREATE TABLE IF NOT EXISTS song_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    current_index INTEGER NOT NULL DEFAULT 0
);

INSERT INTO song_state (id, current_index) VALUES (1, 0)
ON CONFLICT (id) DO NOTHING;

-- Response log: one row per mood or emotion key
CREATE TABLE IF NOT EXISTS response (
    id TEXT PRIMARY KEY,
    submission_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    song_index INTEGER NOT NULL,
    song_id TEXT NOT NULL,
    song_title TEXT NOT NULL DEFAULT '',
    participant_id TEXT NOT NULL,
    emotion TEXT NOT NULL,
    submitted_at TEXT NOT NULL,
    ip_hash TEXT,
    created_ns BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_created ON response(created_ns, seq);
CREATE INDEX IF NOT EXISTS idx_response_participant ON response(participant_id);
CREATE INDEX IF NOT EXISTS idx_response_song_index ON response(song_index);
`
