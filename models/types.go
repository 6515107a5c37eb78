// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// MoodPrefix namespaces mood picks inside the combined response log.
const MoodPrefix = "mood."

// Submission status values
const (
	StatusOK = "ok"
)

// Request types

type SetSongRequest struct {
	Index ID `json:"index"`
}

// SubmitRequest is the wire form of an annotation.
type SubmitRequest struct {
	ParticipantID    string   `json:"participant_id"`
	SongID           *ID      `json:"song_id"`
	CurrentMood      string   `json:"current_mood"`
	SelectedEmotions []string `json:"selected_emotions"`
	AllowEmpty       bool     `json:"allow_empty"`
	Timestamp        string   `json:"timestamp"`
	AdvanceSong      bool     `json:"advance_song,omitempty"`
}

// Response types

type SubmitResponse struct {
	Status      string `json:"status"`
	RowsWritten int    `json:"rows_written"`
}

// SongState is the pointer into the song queue seen by participants.
// Title and URL are only filled for admin callers.
type SongState struct {
	SongID       *ID     `json:"song_id"`
	Index        int     `json:"index"`
	DisplayIndex int     `json:"display_index"`
	Total        int     `json:"total"`
	Title        *string `json:"title,omitempty"`
	URL          *string `json:"url,omitempty"`
}

// Domain types

type Song struct {
	ID    *ID    `json:"id"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// ResponseRow is one persisted annotation line: a mood key or an emotion key.
type ResponseRow struct {
	SongIndex     int    `json:"song_index"`
	SongID        string `json:"song_id"`
	SongTitle     string `json:"song_title"`
	ParticipantID string `json:"participant_id"`
	Emotion       string `json:"emotion"`
	Timestamp     string `json:"timestamp"`
}

type ParticipantRow struct {
	SongID    string `json:"song_id"`
	Emotion   string `json:"emotion"`
	Timestamp string `json:"timestamp"`
}

type ParticipantGroup struct {
	SongIndex int              `json:"song_index"`
	SongTitle string           `json:"song_title"`
	Rows      []ParticipantRow `json:"rows"`
}

type ParticipantDetail struct {
	ParticipantID string             `json:"participant_id"`
	Groups        []ParticipantGroup `json:"groups"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
