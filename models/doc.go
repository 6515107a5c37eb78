// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitRequest: participant_id, song_id, current_mood, selected_emotions,
    allow_empty, timestamp, advance_song
  - SetSongRequest: index

# Response Types

Types for JSON responses:

  - SongState: song_id, index, display_index, total (+ title, url for admins)
  - SubmitResponse: status, rows_written
  - ParticipantDetail: participant_id, groups
  - ErrorResponse: error, message

# Domain Types

  - Song: catalog entry (id, title, url)
  - ResponseRow: one persisted mood or emotion line
  - ID: identifier accepted as a JSON number or string

# Constants

Mood namespace:

	MoodPrefix = "mood."
*/
package models
