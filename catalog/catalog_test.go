// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/songmood/annotation"
	"github.com/danielhkuo/songmood/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSongs(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  []models.Song
		expectErr bool
	}{
		{
			name:  "numeric and string ids",
			input: `[{"id": 7, "title": "Gel", "url": "u1"}, {"id": "b-2", "title": "Git"}]`,
			expected: []models.Song{
				{ID: models.IntID(7), Title: "Gel", URL: "u1"},
				{ID: models.NewID("b-2"), Title: "Git"},
			},
		},
		{
			name:     "empty list",
			input:    `[]`,
			expected: []models.Song{},
		},
		{
			name:      "object instead of list",
			input:     `{"songs": []}`,
			expectErr: true,
		},
		{
			name:      "broken json",
			input:     `[{"id": 1`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSongs(strings.NewReader(tt.input))
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("songs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadSongs_KeepsIDs(t *testing.T) {
	input := `[{"id":"007","title":"A"},{"id":7,"title":"B"},{"id":"1e3","title":"C"},{"id":12.5,"title":"D"}]`

	songs, err := ReadSongs(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	out, err := json.Marshal(songs)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != input {
		t.Errorf("ids rewritten:\nwant %s\ngot  %s", input, out)
	}
	if songs[0].ID.String() == songs[1].ID.String() {
		t.Error("expected \"007\" and 7 to keep distinct text")
	}
}

func TestReadSongs_NotAList(t *testing.T) {
	_, err := ReadSongs(strings.NewReader(`"just a string"`))
	if !errors.Is(err, ErrNotAList) {
		t.Errorf("expected ErrNotAList, got %v", err)
	}
}

func TestLoadSongs_Fallbacks(t *testing.T) {
	if got := LoadSongs(""); len(got) != 0 {
		t.Errorf("expected empty queue for blank path, got %d", len(got))
	}
	if got := LoadSongs(filepath.Join(t.TempDir(), "missing.json")); len(got) != 0 {
		t.Errorf("expected empty queue for missing file, got %d", len(got))
	}
	if got := LoadSongs(writeFile(t, "songs.json", "not json")); len(got) != 0 {
		t.Errorf("expected empty queue for invalid file, got %d", len(got))
	}

	path := writeFile(t, "songs.json", `[{"id": 1, "title": "A"}, {"id": 2, "title": "B"}]`)
	if got := LoadSongs(path); len(got) != 2 {
		t.Errorf("expected 2 songs, got %d", len(got))
	}
}

func TestLoadTaxonomy(t *testing.T) {
	ctx := context.Background()

	bundled := annotation.DefaultTaxonomy()
	if diff := cmp.Diff(bundled, LoadTaxonomy(ctx, "")); diff != "" {
		t.Errorf("blank path should give bundled tree:\n%s", diff)
	}
	if diff := cmp.Diff(bundled, LoadTaxonomy(ctx, writeFile(t, "tax.json", "{"))); diff != "" {
		t.Errorf("invalid file should give bundled tree:\n%s", diff)
	}

	path := writeFile(t, "tax.json", `{
		"current_mood": ["Sakin", "Mutlu"],
		"song_emotions": {"Neşe": ["Neşeli"], "Hiçbiri": []}
	}`)
	got := LoadTaxonomy(ctx, path)
	if diff := cmp.Diff([]string{"Sakin", "Mutlu"}, got.Moods); diff != "" {
		t.Errorf("moods mismatch:\n%s", diff)
	}
	if len(got.Categories) != 2 || got.Categories[0].Label != "Neşe" {
		t.Errorf("unexpected categories %+v", got.Categories)
	}
}

func TestCatalogState(t *testing.T) {
	c := Catalog{Songs: []models.Song{
		{ID: models.IntID(10), Title: "First", URL: "u1"},
		{ID: models.IntID(20), Title: "Second", URL: "u2"},
		{ID: models.IntID(30), Title: "Third"},
	}}

	tests := []struct {
		name          string
		index         int
		details       bool
		expectedIndex int
		expectedID    string
	}{
		{"first", 0, false, 0, "10"},
		{"middle", 1, true, 1, "20"},
		{"past the end", 9, false, 2, "30"},
		{"negative", -4, true, 0, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := c.State(tt.index, tt.details)
			if s.Index != tt.expectedIndex {
				t.Errorf("expected index %d, got %d", tt.expectedIndex, s.Index)
			}
			if s.DisplayIndex != tt.expectedIndex+1 {
				t.Errorf("expected display index %d, got %d", tt.expectedIndex+1, s.DisplayIndex)
			}
			if s.Total != 3 {
				t.Errorf("expected total 3, got %d", s.Total)
			}
			if s.SongID == nil || s.SongID.String() != tt.expectedID {
				t.Errorf("expected song id %s, got %v", tt.expectedID, s.SongID)
			}
			if tt.details != (s.Title != nil) {
				t.Errorf("title presence mismatch: details=%v title=%v", tt.details, s.Title)
			}
		})
	}
}

func TestCatalogState_Empty(t *testing.T) {
	s := Catalog{}.State(3, true)
	expected := models.SongState{}
	if diff := cmp.Diff(expected, s); diff != "" {
		t.Errorf("empty queue state mismatch:\n%s", diff)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ index, total, expected int }{
		{0, 0, 0},
		{5, 0, 0},
		{-1, 3, 0},
		{2, 3, 2},
		{3, 3, 2},
	}
	for _, tt := range tests {
		if got := Clamp(tt.index, tt.total); got != tt.expected {
			t.Errorf("Clamp(%d, %d) = %d, expected %d", tt.index, tt.total, got, tt.expected)
		}
	}
}
