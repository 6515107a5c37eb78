// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CurrentIndex returns the stored queue position. A missing row reads as 0.
func CurrentIndex(ctx context.Context, db *sql.DB) (int, error) {
	var index int
	err := db.QueryRowContext(ctx, `SELECT current_index FROM song_state WHERE id = 1`).Scan(&index)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read current index: %w", err)
	}
	return max(index, 0), nil
}

// SaveIndex stores the queue position.
func SaveIndex(ctx context.Context, db *sql.DB, index int) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO song_state (id, current_index) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET current_index = excluded.current_index
	`, index)
	if err != nil {
		return fmt.Errorf("failed to save current index: %w", err)
	}
	return nil
}

// AdvanceIndex moves the queue from one position to another only if it
// still sits at from. It reports whether the move happened.
func AdvanceIndex(ctx context.Context, db *sql.DB, from, to int) (bool, error) {
	res, err := db.ExecContext(ctx, `
		UPDATE song_state SET current_index = $1 WHERE id = 1 AND current_index = $2
	`, to, from)
	if err != nil {
		return false, fmt.Errorf("failed to advance current index: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to advance current index: %w", err)
	}
	return n == 1, nil
}
