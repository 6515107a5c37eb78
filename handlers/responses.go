// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/songmood/db"
	"github.com/danielhkuo/songmood/middleware"
)

type ResponsesHandler struct {
	db *sql.DB
}

func NewResponsesHandler(db *sql.DB) *ResponsesHandler {
	return &ResponsesHandler{db: db}
}

// Responses handles GET /api/admin/responses?limit=N
// Most recent first; limit defaults to 300 and is clamped to [1, 5000]
func (h *ResponsesHandler) Responses(w http.ResponseWriter, r *http.Request) {
	limit := db.DefaultResponseLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	rows, err := db.RecentResponses(r.Context(), h.db, limit)
	if err != nil {
		slog.Error("failed to list responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rows)
}

// Participants handles GET /api/admin/participants
func (h *ResponsesHandler) Participants(w http.ResponseWriter, r *http.Request) {
	ids, err := db.Participants(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to list participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ids)
}

// Participant handles GET /api/admin/participant/{id}
// Unknown participants get an empty group list, not 404
func (h *ResponsesHandler) Participant(w http.ResponseWriter, r *http.Request) {
	participantID := r.PathValue("id")
	if participantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant id is required")
		return
	}

	detail, err := db.ParticipantResponses(r.Context(), h.db, participantID)
	if err != nil {
		slog.Error("failed to load participant", "participant_id", participantID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}
