// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/danielhkuo/songmood/models"
)

// CSVHeader is the first line of every summary export.
const CSVHeader = "type,song_index,key,count"

// ExportCSV flattens one song's emotion, level-1 and mood buckets into CSV,
// in that dimension order, each sorted by count descending with ties in input
// order. Lines are joined by "\n" without a trailing newline.
//
// Fields are not quoted: keys are expected to be normalized already. Use
// ExportQuotedCSV when keys may contain commas or quotes.
func ExportCSV(songIndex models.ID, emotion, level1, mood []Bucket) string {
	lines := []string{CSVHeader}
	for _, r := range exportRecords(songIndex, emotion, level1, mood) {
		lines = append(lines, strings.Join(r, ","))
	}
	return strings.Join(lines, "\n")
}

// ExportQuotedCSV is ExportCSV with RFC 4180 quoting. Every record, the last
// one included, ends in "\n".
func ExportQuotedCSV(songIndex models.ID, emotion, level1, mood []Bucket) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(strings.Split(CSVHeader, ",")); err != nil {
		return "", err
	}
	if err := w.WriteAll(exportRecords(songIndex, emotion, level1, mood)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportSummary exports one song from a full summary.
func ExportSummary(s Summary, songIndex models.ID) string {
	return ExportCSV(songIndex, s.ByEmotion, s.ByLevel1, s.ByMood)
}

func exportRecords(songIndex models.ID, emotion, level1, mood []Bucket) [][]string {
	var records [][]string
	for _, dim := range []struct {
		name    Dimension
		buckets []Bucket
	}{
		{DimensionEmotion, emotion},
		{DimensionLevel1, level1},
		{DimensionMood, mood},
	} {
		for _, b := range ForSong(dim.buckets, songIndex) {
			records = append(records, []string{
				string(dim.name),
				b.SongIndex.String(),
				b.Key,
				strconv.Itoa(b.Count),
			})
		}
	}
	return records
}
