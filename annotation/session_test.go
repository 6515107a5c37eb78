// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package annotation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/songmood/models"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	payloads []Payload
	err      error
}

func (f *fakeSubmitter) Submit(ctx context.Context, p Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, p)
	return nil
}

func (f *fakeSubmitter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

func songAt(id, index, total int) models.SongState {
	return models.SongState{
		SongID:       models.IntID(id),
		Index:        index,
		DisplayIndex: index + 1,
		Total:        total,
	}
}

func newTestSession(t *testing.T, sub Submitter, opts ...SessionOption) *Session {
	t.Helper()
	return NewSession(newTestSelection(t), sub, opts...)
}

func fillValid(t *testing.T, s *Session) {
	t.Helper()
	if err := s.SelectMood("Mutlu"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleEmotion("Neşe", "Neşeli"); err != nil {
		t.Fatal(err)
	}
}

func TestSession_SubmitLocks(t *testing.T) {
	sub := &fakeSubmitter{}
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s := newTestSession(t, sub, WithClock(func() time.Time { return fixed }))

	s.Observe(songAt(10, 0, 3))
	fillValid(t, s)

	if s.State() != Unlocked {
		t.Fatalf("expected initial state unlocked, got %s", s.State())
	}

	p, err := s.Submit(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !p.SongID().Equal(models.StringID("10")) {
		t.Errorf("expected payload for song 10, got %s", p.SongID())
	}
	if !p.Timestamp().Equal(fixed) {
		t.Errorf("expected injected timestamp, got %v", p.Timestamp())
	}
	if s.State() != Locked {
		t.Fatalf("expected locked after submit, got %s", s.State())
	}

	_, err = s.Submit(context.Background(), "p1")
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("expected ErrAlreadySubmitted, got %v", err)
	}
	if sub.calls() != 1 {
		t.Errorf("expected exactly one network call, got %d", sub.calls())
	}

	if err := s.SelectMood("Sakin"); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("expected edits to be rejected while locked, got %v", err)
	}
}

func TestSession_AfterSubmit(t *testing.T) {
	sub := &fakeSubmitter{}
	var got []Payload
	var s *Session
	s = newTestSession(t, sub, WithAfterSubmit(func(ctx context.Context, p Payload) {
		got = append(got, p)
		// The session is released by now, so the hook may touch it.
		if s.State() != Locked {
			t.Errorf("expected locked inside hook, got %s", s.State())
		}
		s.Observe(songAt(11, 1, 3))
	}))

	s.Observe(songAt(10, 0, 3))
	fillValid(t, s)

	p, err := s.Submit(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].SongID().Equal(p.SongID()) {
		t.Fatalf("expected hook called once with the sent payload, got %d calls", len(got))
	}
	if s.State() != Unlocked {
		t.Errorf("expected song change from hook to unlock, got %s", s.State())
	}

	// Failed sends and rejected submits skip the hook.
	sub.err = errors.New("connection refused")
	fillValid(t, s)
	if _, err := s.Submit(context.Background(), "p1"); err == nil {
		t.Fatal("expected submit error")
	}
	if len(got) != 1 {
		t.Errorf("expected no hook call after a failed send, got %d", len(got))
	}
}

func TestSession_SubmitValidationDoesNotCallNetwork(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newTestSession(t, sub)
	s.Observe(songAt(1, 0, 1))

	_, err := s.Submit(context.Background(), "p1")
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if sub.calls() != 0 {
		t.Errorf("expected no network call, got %d", sub.calls())
	}
	if s.State() != Unlocked {
		t.Errorf("validation error should not lock, got %s", s.State())
	}
}

func TestSession_SubmitWithoutSong(t *testing.T) {
	s := newTestSession(t, &fakeSubmitter{})
	fillValid(t, s)

	_, err := s.Submit(context.Background(), "p1")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != FieldSongID {
		t.Errorf("expected song_id validation error, got %v", err)
	}
}

func TestSession_SubmitFailureKeepsUnlocked(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("connection refused")}
	s := newTestSession(t, sub)
	s.Observe(songAt(1, 0, 1))
	fillValid(t, s)

	if _, err := s.Submit(context.Background(), "p1"); err == nil {
		t.Fatal("expected submit error")
	}
	if s.State() != Unlocked {
		t.Errorf("failed submit should not lock, got %s", s.State())
	}

	snap := s.Snapshot()
	if snap.Mood != "mood.mutlu" || len(snap.Emotions) != 1 {
		t.Errorf("failed submit should keep picks, got %+v", snap)
	}

	sub.err = nil
	if _, err := s.Submit(context.Background(), "p1"); err != nil {
		t.Errorf("retry should succeed, got %v", err)
	}
}

func TestSession_Observe(t *testing.T) {
	var changes []string
	s := newTestSession(t, &fakeSubmitter{}, WithSongChange(func(prev, next models.SongState) {
		changes = append(changes, prev.SongID.String()+"->"+next.SongID.String())
	}))

	if s.Observe(songAt(1, 0, 3)) {
		t.Error("first observation should not be a change")
	}

	fillValid(t, s)
	if _, err := s.Submit(context.Background(), "p1"); err != nil {
		t.Fatal(err)
	}

	if s.Observe(songAt(1, 0, 3)) {
		t.Error("same song id should not be a change")
	}
	if s.State() != Locked {
		t.Errorf("same song id should keep lock, got %s", s.State())
	}

	// Index moves but the id does not: still the same song.
	if s.Observe(models.SongState{SongID: models.NewID("1"), Index: 2, DisplayIndex: 3, Total: 3}) {
		t.Error("index change with same id should not be a change")
	}

	if !s.Observe(songAt(2, 1, 3)) {
		t.Fatal("expected change for new song id")
	}
	if s.State() != Unlocked {
		t.Errorf("expected unlocked after change, got %s", s.State())
	}

	snap := s.Snapshot()
	if snap.Mood != "" || len(snap.Emotions) != 0 || snap.ExclusiveNone {
		t.Errorf("expected cleared picks, got %+v", snap)
	}
	if len(changes) != 1 || changes[0] != "1->2" {
		t.Errorf("expected one callback 1->2, got %v", changes)
	}
}

func TestSession_ObserveAfterNilSong(t *testing.T) {
	s := newTestSession(t, &fakeSubmitter{})

	s.Observe(models.SongState{})
	if s.Observe(songAt(5, 0, 1)) {
		t.Error("a nil last-seen id should not count as a change")
	}
}

func TestSession_ConcurrentPollAndSubmit(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newTestSession(t, sub)
	s.Observe(songAt(1, 0, 2))
	fillValid(t, s)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Submit(context.Background(), "p1")
	}()
	go func() {
		defer wg.Done()
		s.Observe(songAt(2, 1, 2))
	}()
	wg.Wait()

	// Either the submit went first (then the change unlocked it) or the change
	// went first (then the cleared picks failed validation). Both end unlocked.
	if s.State() != Unlocked {
		t.Errorf("expected unlocked, got %s", s.State())
	}
	for _, p := range sub.payloads {
		if !p.SongID().Equal(models.StringID("1")) {
			t.Errorf("submit targeted %s after the song changed", p.SongID())
		}
	}
}
