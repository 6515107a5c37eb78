// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/songmood/models"
	"github.com/danielhkuo/songmood/summary"
)

type fakeSource struct {
	songs        []models.Song
	songsErr     error
	current      models.SongState
	responses    []models.ResponseRow
	participants []string
	participErr  error
	summary      summary.Summary
	gotLimit     atomic.Int64
}

func (f *fakeSource) Songs(ctx context.Context) ([]models.Song, error) {
	return f.songs, f.songsErr
}

func (f *fakeSource) AdminCurrentSong(ctx context.Context) (models.SongState, error) {
	return f.current, nil
}

func (f *fakeSource) Responses(ctx context.Context, limit int) ([]models.ResponseRow, error) {
	f.gotLimit.Store(int64(limit))
	return f.responses, nil
}

func (f *fakeSource) Participants(ctx context.Context) ([]string, error) {
	return f.participants, f.participErr
}

func (f *fakeSource) Summary(ctx context.Context) (summary.Summary, error) {
	return f.summary, nil
}

func testSummary() summary.Summary {
	return summary.Summary{
		BySong: []summary.Rollup{
			{SongIndex: models.NumberID(1), UniqueParticipants: 2, MoodCount: 2, EmotionCount: 3, TotalRows: 5},
			{SongIndex: models.NumberID(2), UniqueParticipants: 1, MoodCount: 1, EmotionCount: 1, TotalRows: 2},
			{SongIndex: models.NumberID(9), UniqueParticipants: 1, MoodCount: 1, TotalRows: 1},
		},
		ByEmotion: []summary.Bucket{
			{SongIndex: models.NumberID(1), Key: "nese.neseli", Count: 2},
			{SongIndex: models.NumberID(1), Key: "mood.mutlu", Count: 2},
			{SongIndex: models.NumberID(1), Key: "huzun.uzgun", Count: 1},
			{SongIndex: models.NumberID(2), Key: "guc.guclu", Count: 1},
		},
		ByMood: []summary.Bucket{
			{SongIndex: models.NumberID(1), Key: "mood.mutlu", Count: 2},
			{SongIndex: models.NumberID(2), Key: "mood.sakin", Count: 1},
		},
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		song     models.Song
		index    int
		expected string
	}{
		{"titled", models.Song{Title: "Gel"}, 0, "1-- Gel"},
		{"untitled", models.Song{}, 2, "3-- Sarki Adi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SongLabel(tt.index, tt.song); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestBySongTable(t *testing.T) {
	songs := []models.Song{{Title: "Gel"}, {}}

	got := BySongTable(testSummary(), songs)

	titles := make([]string, len(got))
	for i, r := range got {
		titles[i] = r.Title
	}
	if diff := cmp.Diff([]string{"Gel", "Sarki Adi", "-"}, titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
	if got[0].TotalRows != 5 || got[0].UniqueParticipants != 2 {
		t.Errorf("rollup not carried: %+v", got[0])
	}
}

func TestBySongTable_Empty(t *testing.T) {
	got := BySongTable(summary.Summary{}, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil table, got %v", got)
	}
}

func TestSongSummary(t *testing.T) {
	songs := []models.Song{{Title: "Gel"}, {Title: "Git"}}

	view := SongSummary(testSummary(), songs, models.StringID("1"))

	if view.Title != "Gel" {
		t.Errorf("expected title Gel, got %q", view.Title)
	}
	if view.Rollup.TotalRows != 5 {
		t.Errorf("expected 5 total rows, got %d", view.Rollup.TotalRows)
	}
	expectedEmotions := []summary.Bucket{
		{SongIndex: models.NumberID(1), Key: "nese.neseli", Count: 2},
		{SongIndex: models.NumberID(1), Key: "huzun.uzgun", Count: 1},
	}
	if diff := cmp.Diff(expectedEmotions, view.TopEmotions); diff != "" {
		t.Errorf("top emotions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]summary.Bucket{{SongIndex: models.NumberID(1), Key: "mood.mutlu", Count: 2}}, view.TopMoods); diff != "" {
		t.Errorf("top moods mismatch (-want +got):\n%s", diff)
	}
}

func TestSongSummary_Unknown(t *testing.T) {
	view := SongSummary(testSummary(), nil, models.StringID("7"))

	if view.Title != "-" {
		t.Errorf("expected placeholder title, got %q", view.Title)
	}
	if view.Rollup != (summary.Rollup{SongIndex: models.StringID("7")}) {
		t.Errorf("expected zero rollup, got %+v", view.Rollup)
	}
	if len(view.TopEmotions) != 0 || len(view.TopMoods) != 0 {
		t.Errorf("expected empty rankings, got %v %v", view.TopEmotions, view.TopMoods)
	}
}

func TestLoadSongs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.json")
	if err := os.WriteFile(path, []byte(`[{"id": 1, "title": "Static"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	down := errors.New("connection refused")

	tests := []struct {
		name     string
		src      *fakeSource
		path     string
		expected []string
	}{
		{"server list", &fakeSource{songs: []models.Song{{Title: "Live"}}}, path, []string{"Live"}},
		{"server empty", &fakeSource{}, path, []string{}},
		{"fallback file", &fakeSource{songsErr: down}, path, []string{"Static"}},
		{"fallback missing", &fakeSource{songsErr: down}, filepath.Join(t.TempDir(), "none.json"), []string{}},
		{"no fallback", &fakeSource{songsErr: down}, "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			songs := LoadSongs(context.Background(), tt.src, tt.path)
			if songs == nil {
				t.Fatal("expected non-nil song list")
			}
			titles := make([]string, len(songs))
			for i, s := range songs {
				titles[i] = s.Title
			}
			if diff := cmp.Diff(tt.expected, titles); diff != "" {
				t.Errorf("songs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadDashboard(t *testing.T) {
	src := &fakeSource{
		songs:        []models.Song{{Title: "Gel"}, {Title: "Git"}},
		current:      models.SongState{SongID: models.IntID(2), Index: 1, DisplayIndex: 2, Total: 2},
		responses:    []models.ResponseRow{{ParticipantID: "p1", Emotion: "mood.mutlu"}},
		participants: []string{"p1"},
		summary:      testSummary(),
	}

	d, err := LoadDashboard(context.Background(), src, "", 50)
	if err != nil {
		t.Fatalf("LoadDashboard failed: %v", err)
	}

	if d.Current.DisplayIndex != 2 {
		t.Errorf("expected display index 2, got %d", d.Current.DisplayIndex)
	}
	if len(d.Songs) != 2 || len(d.Responses) != 1 {
		t.Errorf("unexpected songs %v or responses %v", d.Songs, d.Responses)
	}
	if diff := cmp.Diff([]string{"p1"}, d.Participants); diff != "" {
		t.Errorf("participants mismatch (-want +got):\n%s", diff)
	}
	if len(d.BySong) != 3 || d.BySong[1].Title != "Git" {
		t.Errorf("unexpected by-song table %+v", d.BySong)
	}
	if got := src.gotLimit.Load(); got != 50 {
		t.Errorf("expected limit 50, got %d", got)
	}
}

func TestLoadDashboard_Error(t *testing.T) {
	down := errors.New("status 401")
	src := &fakeSource{participErr: down, summary: testSummary()}

	_, err := LoadDashboard(context.Background(), src, "", 0)
	if !errors.Is(err, down) {
		t.Fatalf("expected wrapped participants error, got %v", err)
	}
}
