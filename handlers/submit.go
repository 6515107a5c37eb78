// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/songmood/annotation"
	"github.com/danielhkuo/songmood/auth"
	"github.com/danielhkuo/songmood/cliparse"
	"github.com/danielhkuo/songmood/db"
	"github.com/danielhkuo/songmood/metric"
	"github.com/danielhkuo/songmood/middleware"
	"github.com/danielhkuo/songmood/models"
)

var errSongMismatch = errors.New("song_id does not match the current song")

type SubmitHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	queue   *SongQueue
	metrics *metric.Metrics
}

func NewSubmitHandler(db *sql.DB, cfg cliparse.Config, queue *SongQueue, m *metric.Metrics) *SubmitHandler {
	return &SubmitHandler{db: db, cfg: cfg, queue: queue, metrics: m}
}

// Submit handles POST /api/submit
// Writes one mood row plus one row per emotion, tagged with the current song
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		h.metrics.Submission(metric.ResultInvalid, 0)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateSubmit(&req); msg != "" {
		h.metrics.Submission(metric.ResultInvalid, 0)
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	if req.Timestamp == "" {
		req.Timestamp = time.Now().UTC().Format(annotation.TimestampLayout)
	}

	ipHash := auth.HashIP(middleware.ClientIP(r), h.cfg.IPHashSalt)

	var written int
	var submissionID string
	err := h.queue.WithCurrent(r.Context(), func(state models.SongState) (bool, error) {
		if state.SongID != nil && !state.SongID.Equal(*req.SongID) {
			return false, errSongMismatch
		}

		rows := buildRows(&req, state)
		id, err := db.AppendResponses(r.Context(), h.db, rows, ipHash)
		if err != nil {
			return false, err
		}
		written, submissionID = len(rows), id
		return req.AdvanceSong, nil
	})

	if errors.Is(err, errSongMismatch) {
		h.metrics.Submission(metric.ResultConflict, 0)
		slog.Info("stale submission rejected", "participant_id", req.ParticipantID, "song_id", req.SongID.String())
		middleware.ErrorResponse(w, http.StatusConflict, errSongMismatch.Error())
		return
	}
	if err != nil && written == 0 {
		h.metrics.Submission(metric.ResultError, 0)
		slog.Error("failed to store submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save submission")
		return
	}
	if err != nil {
		// Rows are stored; only the queue advance failed.
		slog.Warn("submission stored but queue not advanced", "error", err)
	}

	h.metrics.Submission(metric.ResultOK, written)
	slog.Info("submission stored",
		"submission_id", submissionID,
		"participant_id", req.ParticipantID,
		"rows", written,
	)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponse{
		Status:      models.StatusOK,
		RowsWritten: written,
	})
}

// validateSubmit trims the request in place and returns a client message for
// the first problem found.
func validateSubmit(req *models.SubmitRequest) string {
	req.ParticipantID = strings.TrimSpace(req.ParticipantID)
	req.CurrentMood = strings.TrimSpace(req.CurrentMood)
	req.Timestamp = strings.TrimSpace(req.Timestamp)

	switch {
	case req.ParticipantID == "":
		return "participant_id required"
	case req.SongID == nil || req.SongID.String() == "":
		return "song_id required"
	case !strings.HasPrefix(req.CurrentMood, models.MoodPrefix):
		return "current_mood required"
	case len(req.SelectedEmotions) == 0 && !req.AllowEmpty:
		return "selected_emotions required unless allow_empty"
	}
	return ""
}

func buildRows(req *models.SubmitRequest, state models.SongState) []models.ResponseRow {
	songIndex, title := 0, ""
	if state.Total > 0 {
		songIndex = state.DisplayIndex
		if state.Title != nil {
			title = *state.Title
		}
	}

	row := func(key string) models.ResponseRow {
		return models.ResponseRow{
			SongIndex:     songIndex,
			SongID:        req.SongID.String(),
			SongTitle:     title,
			ParticipantID: req.ParticipantID,
			Emotion:       key,
			Timestamp:     req.Timestamp,
		}
	}

	rows := []models.ResponseRow{row(req.CurrentMood)}
	for _, e := range req.SelectedEmotions {
		if e != "" {
			rows = append(rows, row(e))
		}
	}
	return rows
}
