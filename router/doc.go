// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the songmood API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, catalog, metrics)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Participants (public):

	GET  /api/current-song - Current song pointer
	GET  /api/taxonomy     - Mood and emotion tree
	POST /api/submit       - Submit an annotation (rate limited per IP)

Queue control (admin, X-Admin-Key when configured):

	GET  /api/admin/current-song - Pointer with title and url
	POST /api/admin/next-song    - Move forward
	POST /api/admin/prev-song    - Move back
	POST /api/admin/set-song     - Jump to {"index": N}
	GET  /api/admin/songs        - Song list

Review (admin):

	GET /api/admin/responses?limit=N        - Newest rows first
	GET /api/admin/participants             - Distinct participant ids
	GET /api/admin/participant/{id}         - One participant, grouped by song
	GET /api/admin/summary                  - Aggregated buckets
	GET /api/admin/summary/export?song_index=N - One song as CSV

# Handler Initialization

All song handlers share one handlers.SongQueue, so queue moves and
submissions are serialized:

	queue := handlers.NewSongQueue(db, cat, m)
	songHandler := handlers.NewSongHandler(queue)
	submitHandler := handlers.NewSubmitHandler(db, cfg, queue, m)
*/
package router
