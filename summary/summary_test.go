// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/songmood/models"
)

func row(song int, participant, emotion string) models.ResponseRow {
	return models.ResponseRow{
		SongIndex:     song,
		SongID:        "100",
		SongTitle:     "Song",
		ParticipantID: participant,
		Emotion:       emotion,
		Timestamp:     "2025-01-01T00:00:00.000Z",
	}
}

func TestBuild(t *testing.T) {
	rows := []models.ResponseRow{
		row(2, "p1", "mood.mutlu"),
		row(2, "p1", "nese.neseli"),
		row(2, "p1", "nese.coskulu"),
		row(1, "p2", "mood.sakin"),
		row(1, "p2", "huzur.dingin"),
		row(2, "p2", "mood.mutlu"),
		row(2, "p2", "huzur.dingin"),
		row(1, "p1", "mood.sakin"),
	}

	got := Build(rows)

	want := Summary{
		BySong: []Rollup{
			{SongIndex: models.NumberID(1), UniqueParticipants: 2, MoodCount: 2, EmotionCount: 1, TotalRows: 3},
			{SongIndex: models.NumberID(2), UniqueParticipants: 2, MoodCount: 2, EmotionCount: 3, TotalRows: 5},
		},
		ByEmotion: []Bucket{
			b("1", "mood.sakin", 2),
			b("1", "huzur.dingin", 1),
			b("2", "mood.mutlu", 2),
			b("2", "huzur.dingin", 1),
			b("2", "nese.coskulu", 1),
			b("2", "nese.neseli", 1),
		},
		ByLevel1: []Bucket{
			b("1", "huzur", 1),
			b("2", "nese", 2),
			b("2", "huzur", 1),
		},
		ByMood: []Bucket{
			b("1", "mood.sakin", 2),
			b("2", "mood.mutlu", 2),
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(got, Build(rows)); diff != "" {
		t.Errorf("Build not deterministic:\n%s", diff)
	}
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"by_song":[],"by_emotion":[],"by_level1":[],"by_mood":[]}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}

func TestSummary_JSON(t *testing.T) {
	data := `{
		"by_song": [{"song_index": 3, "unique_participants": 2, "mood_count": 2, "emotion_count": 3, "total_rows": 5}],
		"by_emotion": [{"song_index": "3", "emotion": "joy", "count": 5}],
		"by_level1": [{"song_index": 3, "level1": "nese", "count": 3}],
		"by_mood": [{"song_index": 3, "mood": "mood.calm", "count": 2}]
	}`

	var s Summary
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatal(err)
	}

	want := Summary{
		BySong:    []Rollup{{SongIndex: models.NumberID(3), UniqueParticipants: 2, MoodCount: 2, EmotionCount: 3, TotalRows: 5}},
		ByEmotion: []Bucket{b("3", "joy", 5)},
		ByLevel1:  []Bucket{b("3", "nese", 3)},
		ByMood:    []Bucket{b("3", "mood.calm", 2)},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("decoded summary mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"by_song":[{"song_index":3,"unique_participants":2,"mood_count":2,"emotion_count":3,"total_rows":5}],` +
		`"by_emotion":[{"song_index":3,"emotion":"joy","count":5}],` +
		`"by_level1":[{"song_index":3,"level1":"nese","count":3}],` +
		`"by_mood":[{"song_index":3,"mood":"mood.calm","count":2}]}`
	if string(out) != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, out)
	}
}

func TestLevel1(t *testing.T) {
	tests := map[string]string{
		"nese.neseli": "nese",
		"nese":        "nese",
		"":            "",
		"a.b.c":       "a",
	}
	for in, want := range tests {
		if got := Level1(in); got != want {
			t.Errorf("Level1(%q) = %q, expected %q", in, got, want)
		}
	}
}
