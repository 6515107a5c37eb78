// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package annotation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/songmood/models"
)

// LockState tells whether the form accepts a submission for the current song.
type LockState int

const (
	Unlocked LockState = iota
	Locked
)

func (s LockState) String() string {
	switch s {
	case Unlocked:
		return "unlocked"
	case Locked:
		return "locked"
	default:
		return "unknown"
	}
}

// Submitter sends an annotation to the submit endpoint.
type Submitter interface {
	Submit(ctx context.Context, p Payload) error
}

// SongChangeFunc is called after a song change has unlocked the session.
type SongChangeFunc func(prev, next models.SongState)

// AfterSubmitFunc runs after a successful submit, once the session is
// released. A submit may advance the queue, so this is where a client
// re-reads the current song instead of waiting for the next poll.
type AfterSubmitFunc func(ctx context.Context, p Payload)

// Session is one participant's annotation state: their picks, the song they
// are annotating and the submission lock.
//
// A submit holds the session for its whole duration, so a poll result is
// applied either before it (and the submit targets the new song) or after it
// (and the change unlocks the form again).
type Session struct {
	mu        sync.Mutex
	selection *Selection
	submitter Submitter
	state     LockState
	current   *models.SongState

	now           func() time.Time
	onSongChange  SongChangeFunc
	onAfterSubmit AfterSubmitFunc
}

type SessionOption func(*Session)

// WithClock overrides the timestamp source for payloads.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithSongChange registers a callback for song transitions.
func WithSongChange(fn SongChangeFunc) SessionOption {
	return func(s *Session) { s.onSongChange = fn }
}

// WithAfterSubmit registers a hook run after every successful submit.
func WithAfterSubmit(fn AfterSubmitFunc) SessionOption {
	return func(s *Session) { s.onAfterSubmit = fn }
}

func NewSession(selection *Selection, submitter Submitter, opts ...SessionOption) *Session {
	s := &Session{
		selection: selection,
		submitter: submitter,
		state:     Unlocked,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lock state.
func (s *Session) State() LockState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the last observed song pointer.
func (s *Session) Current() (models.SongState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.SongState{}, false
	}
	return *s.current, true
}

// Observe applies a polled song pointer. A changed song id, when a non-nil
// id was seen before, clears the picks and unlocks the session. It reports
// whether a change was detected.
func (s *Session) Observe(next models.SongState) bool {
	s.mu.Lock()
	prev := s.current
	s.current = &next

	if prev == nil || prev.SongID == nil || sameSong(prev.SongID, next.SongID) {
		s.mu.Unlock()
		return false
	}

	s.selection.Reset()
	s.state = Unlocked
	callback := s.onSongChange
	s.mu.Unlock()

	slog.Info("song changed", "from", prev.SongID.String(), "to", songLabel(next.SongID))
	if callback != nil {
		callback(*prev, next)
	}
	return true
}

// Submit builds the payload for the current song and sends it. On success the
// session locks until the song changes and the after-submit hook runs.
// Validation and lock errors return before any network call; submitter
// errors leave the lock state unchanged.
func (s *Session) Submit(ctx context.Context, participantID string) (Payload, error) {
	p, hook, err := s.submitLocked(ctx, participantID)
	if err != nil {
		return Payload{}, err
	}
	if hook != nil {
		hook(ctx, p)
	}
	return p, nil
}

func (s *Session) submitLocked(ctx context.Context, participantID string) (Payload, AfterSubmitFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Locked {
		return Payload{}, nil, ErrAlreadySubmitted
	}

	var songID *models.ID
	if s.current != nil {
		songID = s.current.SongID
	}

	p, err := s.selection.BuildPayload(participantID, songID, s.now())
	if err != nil {
		return Payload{}, nil, err
	}

	if err := s.submitter.Submit(ctx, p); err != nil {
		return Payload{}, nil, err
	}

	s.state = Locked
	slog.Info("annotation submitted", "participant_id", p.ParticipantID(), "song_id", p.SongID().String())
	return p, s.onAfterSubmit, nil
}

func (s *Session) setAfterSubmit(fn AfterSubmitFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAfterSubmit = fn
}

// SelectMood forwards to the selection unless the session is locked.
func (s *Session) SelectMood(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Locked {
		return ErrAlreadySubmitted
	}
	return s.selection.SelectMood(label)
}

// ToggleEmotion forwards to the selection unless the session is locked.
func (s *Session) ToggleEmotion(level1, level2 string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Locked {
		return false, ErrAlreadySubmitted
	}
	return s.selection.ToggleEmotion(level1, level2)
}

// SetExclusiveNone forwards to the selection unless the session is locked.
func (s *Session) SetExclusiveNone(flag bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Locked {
		return ErrAlreadySubmitted
	}
	return s.selection.SetExclusiveNone(flag)
}

// Snapshot is a copy of the picks for rendering.
type Snapshot struct {
	State         LockState
	Mood          string
	Emotions      []string
	ExclusiveNone bool
	Song          *models.SongState
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	mood, _ := s.selection.SelectedMood()
	snap := Snapshot{
		State:         s.state,
		Mood:          mood,
		Emotions:      s.selection.SelectedEmotions(),
		ExclusiveNone: s.selection.ExclusiveNone(),
	}
	if s.current != nil {
		song := *s.current
		snap.Song = &song
	}
	return snap
}

func sameSong(a, b *models.ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func songLabel(id *models.ID) string {
	if id == nil {
		return "<none>"
	}
	return id.String()
}
