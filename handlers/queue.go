// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/danielhkuo/songmood/catalog"
	"github.com/danielhkuo/songmood/db"
	"github.com/danielhkuo/songmood/metric"
	"github.com/danielhkuo/songmood/models"
)

// Queue move causes, also used as metric labels.
const (
	CauseNext    = "next"
	CausePrev    = "prev"
	CauseSet     = "set"
	CauseAdvance = "advance"
)

// SongQueue owns the admin's position in the song list. All reads and moves
// go through one mutex so a submit always sees a settled position.
type SongQueue struct {
	mu      sync.Mutex
	db      *sql.DB
	catalog catalog.Catalog
	metrics *metric.Metrics
}

func NewSongQueue(db *sql.DB, cat catalog.Catalog, m *metric.Metrics) *SongQueue {
	return &SongQueue{db: db, catalog: cat, metrics: m}
}

// Songs returns the queue contents.
func (q *SongQueue) Songs() []models.Song {
	if q.catalog.Songs == nil {
		return []models.Song{}
	}
	return q.catalog.Songs
}

// Current returns the current song pointer. A stored position that no longer
// fits the song list is clamped and written back.
func (q *SongQueue) Current(ctx context.Context, withDetails bool) (models.SongState, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	index, err := q.currentLocked(ctx)
	if err != nil {
		return models.SongState{}, err
	}
	return q.catalog.State(index, withDetails), nil
}

// Move applies step to the current position, clamps the result and stores it.
func (q *SongQueue) Move(ctx context.Context, cause string, step func(index int) int) (models.SongState, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	index, err := q.currentLocked(ctx)
	if err != nil {
		return models.SongState{}, err
	}

	next := catalog.Clamp(step(index), q.catalog.Total())
	if err := db.SaveIndex(ctx, q.db, next); err != nil {
		return models.SongState{}, err
	}
	q.metrics.SongChanged(cause, next)

	return q.catalog.State(next, true), nil
}

// WithCurrent runs fn with the queue locked at the current position. fn may
// return true to advance the queue by one afterwards; the advance only
// happens if the stored position has not moved meanwhile.
func (q *SongQueue) WithCurrent(ctx context.Context, fn func(state models.SongState) (bool, error)) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	index, err := q.currentLocked(ctx)
	if err != nil {
		return err
	}

	advance, err := fn(q.catalog.State(index, true))
	if err != nil || !advance || q.catalog.Total() == 0 {
		return err
	}

	next := catalog.Clamp(index+1, q.catalog.Total())
	moved, err := db.AdvanceIndex(ctx, q.db, index, next)
	if err != nil {
		return fmt.Errorf("advance after submit: %w", err)
	}
	if moved {
		q.metrics.SongChanged(CauseAdvance, next)
	}
	return nil
}

func (q *SongQueue) currentLocked(ctx context.Context) (int, error) {
	stored, err := db.CurrentIndex(ctx, q.db)
	if err != nil {
		return 0, err
	}

	index := catalog.Clamp(stored, q.catalog.Total())
	if index != stored {
		if err := db.SaveIndex(ctx, q.db, index); err != nil {
			return 0, err
		}
	}
	return index, nil
}
