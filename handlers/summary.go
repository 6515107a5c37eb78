// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/songmood/db"
	"github.com/danielhkuo/songmood/middleware"
	"github.com/danielhkuo/songmood/models"
	"github.com/danielhkuo/songmood/summary"
)

type SummaryHandler struct {
	db *sql.DB
}

func NewSummaryHandler(db *sql.DB) *SummaryHandler {
	return &SummaryHandler{db: db}
}

// Summary handles GET /api/admin/summary
func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, ok := h.build(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, s)
}

// Export handles GET /api/admin/summary/export?song_index=N
// Returns the CSV export of one song
func (h *SummaryHandler) Export(w http.ResponseWriter, r *http.Request) {
	songIndex := strings.TrimSpace(r.URL.Query().Get("song_index"))
	if songIndex == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "song_index is required")
		return
	}

	n, isNumber := models.StringID(songIndex).Int()
	if !isNumber {
		middleware.ErrorResponse(w, http.StatusBadRequest, "song_index must be a number")
		return
	}
	id := models.NumberID(n)

	s, ok := h.build(w, r)
	if !ok {
		return
	}

	middleware.CSVResponse(w, "summary_song_"+id.String()+".csv", summary.ExportSummary(s, id))
}

func (h *SummaryHandler) build(w http.ResponseWriter, r *http.Request) (summary.Summary, bool) {
	rows, err := db.AllResponses(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to load responses for summary", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return summary.Summary{}, false
	}
	return summary.Build(rows), true
}
