// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package summary aggregates annotation rows into per-song rankings.

# Collections

Build turns raw response rows into four collections:

  - BySong: one Rollup per song (unique participants, mood rows, emotion rows, total)
  - ByEmotion: count per (song, key), mood keys included
  - ByLevel1: count per (song, level-1 category) for emotion rows
  - ByMood: count per (song, mood key)

# Rankings

	summary.TopEmotions(s.ByEmotion, songIndex, 10) // never returns "mood." keys
	summary.TopBySong(s.ByMood, songIndex, 10)
	summary.SongRollup(s.BySong, songIndex)         // zero row when absent

Song indexes compare as models.ID, so 3 and "3" select the same song. Sorting
is stable: equal counts keep their input order.

# Export

ExportCSV writes "type,song_index,key,count" followed by the emotion, level1 and
mood rows of one song. ExportQuotedCSV adds RFC 4180 quoting.
*/
package summary
