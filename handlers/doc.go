// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the songmood API.

# Handler Types

Each handler is a struct holding its dependencies:

  - SongHandler: current song and admin queue navigation
  - SubmitHandler: participant annotations
  - ResponsesHandler: raw rows, participant list and participant detail
  - SummaryHandler: aggregated summary and per-song CSV export
  - TaxonomyHandler: the emotion tree served to participants

SongHandler and SubmitHandler share a SongQueue, which serializes song
changes against submissions:

	queue := handlers.NewSongQueue(db, cat, m)
	songHandler := handlers.NewSongHandler(queue)
	submitHandler := handlers.NewSubmitHandler(db, cfg, queue, m)

# Song Queue

The current index is persisted in the song_state table and clamped to the
catalog on every read:

	GET  /api/current-song        → CurrentSong (no title or url)
	GET  /api/admin/current-song  → AdminCurrentSong
	POST /api/admin/next-song     → NextSong
	POST /api/admin/prev-song     → PrevSong
	POST /api/admin/set-song      → SetSong {"index": n}

# Submissions

	POST /api/submit → Submit

A submission writes one mood row and one row per emotion in a single
transaction. A song_id other than the current song's is rejected with 409.
With advance_song set the queue moves forward only if no one moved it first.

# Admin Reads

	GET /api/admin/responses?limit=N       → Responses (newest first)
	GET /api/admin/participants            → Participants
	GET /api/admin/participant/{id}        → Participant
	GET /api/admin/summary                 → Summary
	GET /api/admin/summary/export?song_index=N → Export

Admin routes require the X-Admin-Key header when an admin key is configured.
*/
package handlers
