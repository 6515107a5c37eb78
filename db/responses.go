// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/songmood/models"
)

// Response listing bounds.
const (
	DefaultResponseLimit = 300
	MaxResponseLimit     = 5000
)

// ClampLimit pins a requested listing size into [1, MaxResponseLimit].
func ClampLimit(limit int) int {
	return max(1, min(limit, MaxResponseLimit))
}

// AppendResponses stores the rows of one submission atomically and returns
// the submission id. Rows keep their order through the seq column.
func AppendResponses(ctx context.Context, db *sql.DB, rows []models.ResponseRow, ipHash string) (string, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// created_ns is kept strictly increasing so recency order is total.
	var last int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(created_ns), 0) FROM response`).Scan(&last); err != nil {
		return "", fmt.Errorf("failed to read last insert time: %w", err)
	}
	createdNS := max(time.Now().UnixNano(), last+1)

	submissionID := uuid.NewString()
	for seq, row := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO response (id, submission_id, seq, song_index, song_id, song_title,
				participant_id, emotion, submitted_at, ip_hash, created_ns)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, uuid.NewString(), submissionID, seq, row.SongIndex, row.SongID, row.SongTitle,
			row.ParticipantID, row.Emotion, row.Timestamp, ipHash, createdNS)
		if err != nil {
			return "", fmt.Errorf("failed to insert response row %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit responses: %w", err)
	}
	return submissionID, nil
}

// RecentResponses returns up to limit rows, most recent first.
func RecentResponses(ctx context.Context, db *sql.DB, limit int) ([]models.ResponseRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT song_index, song_id, song_title, participant_id, emotion, submitted_at
		FROM response
		ORDER BY created_ns DESC, seq DESC
		LIMIT $1
	`, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	return scanResponses(rows)
}

// CountResponses returns the number of stored rows.
func CountResponses(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM response`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return n, nil
}

// AllResponses returns every row in insertion order.
func AllResponses(ctx context.Context, db *sql.DB) ([]models.ResponseRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT song_index, song_id, song_title, participant_id, emotion, submitted_at
		FROM response
		ORDER BY created_ns, seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	return scanResponses(rows)
}

func scanResponses(rows *sql.Rows) ([]models.ResponseRow, error) {
	defer rows.Close()

	out := []models.ResponseRow{}
	for rows.Next() {
		var r models.ResponseRow
		if err := rows.Scan(&r.SongIndex, &r.SongID, &r.SongTitle, &r.ParticipantID, &r.Emotion, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read responses: %w", err)
	}
	return out, nil
}

// Participants returns the distinct non-empty participant ids, sorted.
func Participants(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT DISTINCT participant_id FROM response WHERE participant_id <> ''
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read participants: %w", err)
	}

	// Byte order, independent of the database collation.
	sort.Strings(ids)
	return ids, nil
}

// ParticipantResponses groups one participant's rows by song index,
// ascending. Rows inside a group keep insertion order.
func ParticipantResponses(ctx context.Context, db *sql.DB, participantID string) (models.ParticipantDetail, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT song_index, song_id, song_title, emotion, submitted_at
		FROM response
		WHERE participant_id = $1
		ORDER BY created_ns, seq
	`, participantID)
	if err != nil {
		return models.ParticipantDetail{}, fmt.Errorf("failed to query participant responses: %w", err)
	}
	defer rows.Close()

	groups := make(map[int]*models.ParticipantGroup)
	for rows.Next() {
		var songIndex int
		var title string
		var r models.ParticipantRow
		if err := rows.Scan(&songIndex, &r.SongID, &title, &r.Emotion, &r.Timestamp); err != nil {
			return models.ParticipantDetail{}, fmt.Errorf("failed to scan participant response: %w", err)
		}

		g, ok := groups[songIndex]
		if !ok {
			g = &models.ParticipantGroup{SongIndex: songIndex, SongTitle: title, Rows: []models.ParticipantRow{}}
			groups[songIndex] = g
		}
		g.Rows = append(g.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return models.ParticipantDetail{}, fmt.Errorf("failed to read participant responses: %w", err)
	}

	detail := models.ParticipantDetail{
		ParticipantID: participantID,
		Groups:        make([]models.ParticipantGroup, 0, len(groups)),
	}
	for _, g := range groups {
		detail.Groups = append(detail.Groups, *g)
	}
	sort.Slice(detail.Groups, func(i, j int) bool {
		return detail.Groups[i].SongIndex < detail.Groups[j].SongIndex
	})

	return detail, nil
}
