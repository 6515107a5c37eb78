// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/songmood/catalog"
	"github.com/danielhkuo/songmood/cliparse"
	"github.com/danielhkuo/songmood/handlers"
	"github.com/danielhkuo/songmood/metric"
	"github.com/danielhkuo/songmood/middleware"
)

// SubmitBurst is the number of submissions a client may send back to back
// before the rate limit applies.
const SubmitBurst = 5

func NewRouter(db *sql.DB, cfg cliparse.Config, cat catalog.Catalog, m *metric.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	queue := handlers.NewSongQueue(db, cat, m)
	songHandler := handlers.NewSongHandler(queue)
	submitHandler := handlers.NewSubmitHandler(db, cfg, queue, m)
	responsesHandler := handlers.NewResponsesHandler(db)
	summaryHandler := handlers.NewSummaryHandler(db)
	taxonomyHandler := handlers.NewTaxonomyHandler(cat.Taxonomy)

	// The gauge otherwise reads 0 until the first move after a restart
	if state, err := queue.Current(context.Background(), false); err == nil {
		m.SetCurrentIndex(state.Index)
	} else {
		slog.Warn("could not read current song", "error", err)
	}

	proxies, err := middleware.ParseProxies(cfg.TrustedProxies)
	if err != nil {
		slog.Warn("ignoring trusted proxies", "error", err)
		proxies = nil
	}

	limiter := middleware.NewRateLimiter(cfg.SubmitRate, SubmitBurst)
	limiter.OnReject(func() { m.Submission(metric.ResultLimited, 0) })

	public := func(h http.HandlerFunc) http.HandlerFunc {
		return proxies.Wrap(middleware.WithLogging(h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return public(middleware.RequireAdminKey(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	// Participant operations (public)
	mux.HandleFunc("GET /api/current-song", public(songHandler.CurrentSong))
	mux.HandleFunc("GET /api/taxonomy", public(taxonomyHandler.Taxonomy))
	mux.HandleFunc("POST /api/submit", public(limiter.Wrap(submitHandler.Submit)))

	// Queue control (admin)
	mux.HandleFunc("GET /api/admin/current-song", admin(songHandler.AdminCurrentSong))
	mux.HandleFunc("POST /api/admin/next-song", admin(songHandler.NextSong))
	mux.HandleFunc("POST /api/admin/prev-song", admin(songHandler.PrevSong))
	mux.HandleFunc("POST /api/admin/set-song", admin(songHandler.SetSong))
	mux.HandleFunc("GET /api/admin/songs", admin(songHandler.Songs))

	// Response review (admin)
	mux.HandleFunc("GET /api/admin/responses", admin(responsesHandler.Responses))
	mux.HandleFunc("GET /api/admin/participants", admin(responsesHandler.Participants))
	mux.HandleFunc("GET /api/admin/participant/{id}", admin(responsesHandler.Participant))
	mux.HandleFunc("GET /api/admin/summary", admin(summaryHandler.Summary))
	mux.HandleFunc("GET /api/admin/summary/export", admin(summaryHandler.Export))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("songmood API v1"))
	})

	return mux
}
