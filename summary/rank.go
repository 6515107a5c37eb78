// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"sort"
	"strings"

	"github.com/danielhkuo/songmood/models"
)

// DefaultLimit is the number of entries shown per ranking.
const DefaultLimit = 10

// TopBySong returns the buckets of one song ordered by count descending.
// Equal counts keep their input order. A limit <= 0 means DefaultLimit.
func TopBySong(buckets []Bucket, songIndex models.ID, limit int) []Bucket {
	return top(buckets, songIndex, limit, nil)
}

// TopEmotions is TopBySong that never returns mood keys, even when the
// collection mixes them in.
func TopEmotions(buckets []Bucket, songIndex models.ID, limit int) []Bucket {
	return top(buckets, songIndex, limit, func(b Bucket) bool {
		return !strings.HasPrefix(b.Key, models.MoodPrefix)
	})
}

// ForSong returns every bucket of one song ordered by count descending, ties
// in input order.
func ForSong(buckets []Bucket, songIndex models.ID) []Bucket {
	return top(buckets, songIndex, len(buckets), nil)
}

// SongRollup returns the rollup of one song, or a zero row for a song
// without responses.
func SongRollup(rollups []Rollup, songIndex models.ID) Rollup {
	for _, r := range rollups {
		if r.SongIndex.Equal(songIndex) {
			return r
		}
	}
	return Rollup{SongIndex: songIndex}
}

func top(buckets []Bucket, songIndex models.ID, limit int, keep func(Bucket) bool) []Bucket {
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]Bucket, 0)
	for _, b := range buckets {
		if !b.SongIndex.Equal(songIndex) {
			continue
		}
		if keep != nil && !keep(b) {
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
