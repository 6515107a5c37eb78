// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/songmood/middleware"
	"github.com/danielhkuo/songmood/models"
)

type SongHandler struct {
	queue *SongQueue
}

func NewSongHandler(queue *SongQueue) *SongHandler {
	return &SongHandler{queue: queue}
}

// CurrentSong handles GET /api/current-song
func (h *SongHandler) CurrentSong(w http.ResponseWriter, r *http.Request) {
	h.current(w, r, false)
}

// AdminCurrentSong handles GET /api/admin/current-song
// Same pointer plus title and url
func (h *SongHandler) AdminCurrentSong(w http.ResponseWriter, r *http.Request) {
	h.current(w, r, true)
}

func (h *SongHandler) current(w http.ResponseWriter, r *http.Request, withDetails bool) {
	state, err := h.queue.Current(r.Context(), withDetails)
	if err != nil {
		slog.Error("failed to read current song", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// NextSong handles POST /api/admin/next-song
func (h *SongHandler) NextSong(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, CauseNext, func(index int) int { return index + 1 })
}

// PrevSong handles POST /api/admin/prev-song
func (h *SongHandler) PrevSong(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, CausePrev, func(index int) int { return index - 1 })
}

// SetSong handles POST /api/admin/set-song
// A missing or non-numeric index means 0; out of range values are clamped
func (h *SongHandler) SetSong(w http.ResponseWriter, r *http.Request) {
	var req models.SetSongRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		slog.Debug("set-song body ignored", "error", err)
	}

	requested, _ := req.Index.Int()
	h.move(w, r, CauseSet, func(int) int { return requested })
}

func (h *SongHandler) move(w http.ResponseWriter, r *http.Request, cause string, step func(int) int) {
	state, err := h.queue.Move(r.Context(), cause, step)
	if err != nil {
		slog.Error("failed to move song queue", "cause", cause, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("song changed", "cause", cause, "index", state.Index, "total", state.Total)
	middleware.JSONResponse(w, http.StatusOK, state)
}

// Songs handles GET /api/admin/songs
func (h *SongHandler) Songs(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.queue.Songs())
}
