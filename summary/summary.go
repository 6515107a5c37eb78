// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/danielhkuo/songmood/models"
)

// Dimension names a bucket collection. The values double as the "type"
// column of the CSV export.
type Dimension string

const (
	DimensionEmotion Dimension = "emotion"
	DimensionLevel1  Dimension = "level1"
	DimensionMood    Dimension = "mood"
)

// Bucket is the count of one key for one song.
type Bucket struct {
	SongIndex models.ID
	Key       string
	Count     int
}

// Rollup is the per-song summary row.
type Rollup struct {
	SongIndex          models.ID `json:"song_index"`
	UniqueParticipants int       `json:"unique_participants"`
	MoodCount          int       `json:"mood_count"`
	EmotionCount       int       `json:"emotion_count"`
	TotalRows          int       `json:"total_rows"`
}

// Summary holds the four bucket collections served to the admin view.
//
// On the wire each bucket names its key after the dimension:
// {"song_index": 3, "emotion": "nese.neseli", "count": 5}.
type Summary struct {
	BySong    []Rollup
	ByEmotion []Bucket
	ByLevel1  []Bucket
	ByMood    []Bucket
}

// Build aggregates raw response rows. Every row counts toward the emotion
// collection, mood rows also count by mood, the rest by level-1 category.
// Collections are ordered by song index, then count descending, then key.
func Build(rows []models.ResponseRow) Summary {
	type songAgg struct {
		rollup       Rollup
		participants map[string]bool
	}

	songs := make(map[int]*songAgg)
	byEmotion := make(map[bucketKey]int)
	byLevel1 := make(map[bucketKey]int)
	byMood := make(map[bucketKey]int)

	for _, row := range rows {
		agg, ok := songs[row.SongIndex]
		if !ok {
			agg = &songAgg{participants: make(map[string]bool)}
			songs[row.SongIndex] = agg
		}
		agg.rollup.TotalRows++
		if row.ParticipantID != "" {
			agg.participants[row.ParticipantID] = true
		}

		byEmotion[bucketKey{row.SongIndex, row.Emotion}]++

		if strings.HasPrefix(row.Emotion, models.MoodPrefix) {
			agg.rollup.MoodCount++
			byMood[bucketKey{row.SongIndex, row.Emotion}]++
		} else {
			agg.rollup.EmotionCount++
			byLevel1[bucketKey{row.SongIndex, Level1(row.Emotion)}]++
		}
	}

	s := Summary{
		BySong:    make([]Rollup, 0, len(songs)),
		ByEmotion: sortedBuckets(byEmotion),
		ByLevel1:  sortedBuckets(byLevel1),
		ByMood:    sortedBuckets(byMood),
	}

	indexes := make([]int, 0, len(songs))
	for idx := range songs {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	for _, idx := range indexes {
		agg := songs[idx]
		r := agg.rollup
		r.SongIndex = *models.IntID(idx)
		r.UniqueParticipants = len(agg.participants)
		s.BySong = append(s.BySong, r)
	}

	return s
}

// Level1 returns the category part of an "<level1>.<level2>" key.
func Level1(emotion string) string {
	level1, _, _ := strings.Cut(emotion, ".")
	return level1
}

type bucketKey struct {
	song int
	key  string
}

func sortedBuckets(counts map[bucketKey]int) []Bucket {
	keys := make([]bucketKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.song != b.song {
			return a.song < b.song
		}
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return a.key < b.key
	})

	out := make([]Bucket, len(keys))
	for i, k := range keys {
		out[i] = Bucket{SongIndex: *models.IntID(k.song), Key: k.key, Count: counts[k]}
	}
	return out
}

type emotionBucket struct {
	SongIndex models.ID `json:"song_index"`
	Emotion   string    `json:"emotion"`
	Count     int       `json:"count"`
}

type level1Bucket struct {
	SongIndex models.ID `json:"song_index"`
	Level1    string    `json:"level1"`
	Count     int       `json:"count"`
}

type moodBucket struct {
	SongIndex models.ID `json:"song_index"`
	Mood      string    `json:"mood"`
	Count     int       `json:"count"`
}

type wireSummary struct {
	BySong    []Rollup        `json:"by_song"`
	ByEmotion []emotionBucket `json:"by_emotion"`
	ByLevel1  []level1Bucket  `json:"by_level1"`
	ByMood    []moodBucket    `json:"by_mood"`
}

func (s Summary) MarshalJSON() ([]byte, error) {
	w := wireSummary{
		BySong:    s.BySong,
		ByEmotion: make([]emotionBucket, len(s.ByEmotion)),
		ByLevel1:  make([]level1Bucket, len(s.ByLevel1)),
		ByMood:    make([]moodBucket, len(s.ByMood)),
	}
	if w.BySong == nil {
		w.BySong = []Rollup{}
	}
	for i, b := range s.ByEmotion {
		w.ByEmotion[i] = emotionBucket{b.SongIndex, b.Key, b.Count}
	}
	for i, b := range s.ByLevel1 {
		w.ByLevel1[i] = level1Bucket{b.SongIndex, b.Key, b.Count}
	}
	for i, b := range s.ByMood {
		w.ByMood[i] = moodBucket{b.SongIndex, b.Key, b.Count}
	}
	return json.Marshal(w)
}

func (s *Summary) UnmarshalJSON(data []byte) error {
	var w wireSummary
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	s.BySong = w.BySong
	s.ByEmotion = make([]Bucket, len(w.ByEmotion))
	s.ByLevel1 = make([]Bucket, len(w.ByLevel1))
	s.ByMood = make([]Bucket, len(w.ByMood))
	for i, b := range w.ByEmotion {
		s.ByEmotion[i] = Bucket{b.SongIndex, b.Emotion, b.Count}
	}
	for i, b := range w.ByLevel1 {
		s.ByLevel1[i] = Bucket{b.SongIndex, b.Level1, b.Count}
	}
	for i, b := range w.ByMood {
		s.ByMood[i] = Bucket{b.SongIndex, b.Mood, b.Count}
	}
	return nil
}
