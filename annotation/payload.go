// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package annotation

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/danielhkuo/songmood/models"
)

// TimestampLayout is the ISO-8601 form used on the wire, millisecond precision in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Payload is one participant's annotation for one song. It is built by
// Selection.BuildPayload and cannot be changed afterwards.
type Payload struct {
	participantID string
	songID        models.ID
	mood          string
	emotions      []string
	allowEmpty    bool
	timestamp     time.Time
}

func (p Payload) ParticipantID() string { return p.participantID }
func (p Payload) SongID() models.ID     { return p.songID }
func (p Payload) Mood() string          { return p.mood }
func (p Payload) Emotions() []string    { return slices.Clone(p.emotions) }
func (p Payload) AllowEmpty() bool      { return p.allowEmpty }
func (p Payload) Timestamp() time.Time  { return p.timestamp }

// Request returns the wire form.
func (p Payload) Request() models.SubmitRequest {
	songID := p.songID
	emotions := slices.Clone(p.emotions)
	if emotions == nil {
		emotions = []string{}
	}
	return models.SubmitRequest{
		ParticipantID:    p.participantID,
		SongID:           &songID,
		CurrentMood:      p.mood,
		SelectedEmotions: emotions,
		AllowEmpty:       p.allowEmpty,
		Timestamp:        p.timestamp.Format(TimestampLayout),
	}
}

func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Request())
}
