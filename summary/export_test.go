// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"strings"
	"testing"
)

func TestExportCSV(t *testing.T) {
	emotion := []Bucket{b("3", "joy", 5)}
	mood := []Bucket{b("3", "calm", 2)}

	got := ExportCSV(sid("3"), emotion, nil, mood)
	expected := "type,song_index,key,count\nemotion,3,joy,5\nmood,3,calm,2"
	if got != expected {
		t.Errorf("expected\n%q\ngot\n%q", expected, got)
	}
}

func TestExportCSV_OrderAndFilter(t *testing.T) {
	emotion := []Bucket{
		b("1", "nese.neseli", 1),
		b("2", "huzur.dingin", 9),
		b("1", "huzur.dingin", 4),
		b("1", "guc.guclu", 1),
	}
	level1 := []Bucket{b("1", "nese", 1), b("1", "huzur", 4), b("1", "guc", 1)}
	mood := []Bucket{b("1", "mood.sakin", 3), b("2", "mood.mutlu", 1)}

	got := ExportCSV(sid("1"), emotion, level1, mood)
	expected := strings.Join([]string{
		"type,song_index,key,count",
		"emotion,1,huzur.dingin,4",
		"emotion,1,nese.neseli,1",
		"emotion,1,guc.guclu,1",
		"level1,1,huzur,4",
		"level1,1,nese,1",
		"level1,1,guc,1",
		"mood,1,mood.sakin,3",
	}, "\n")
	if got != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, got)
	}
}

func TestExportCSV_Empty(t *testing.T) {
	if got := ExportCSV(sid("1"), nil, nil, nil); got != CSVHeader {
		t.Errorf("expected header only, got %q", got)
	}
}

func TestExportQuotedCSV(t *testing.T) {
	emotion := []Bucket{b("1", `odd,"key"`, 2)}

	got, err := ExportQuotedCSV(sid("1"), emotion, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	expected := "type,song_index,key,count\nemotion,1,\"odd,\"\"key\"\"\",2\n"
	if got != expected {
		t.Errorf("expected\n%q\ngot\n%q", expected, got)
	}
}

func TestExportSummary(t *testing.T) {
	s := Summary{
		ByEmotion: []Bucket{b("3", "joy", 5)},
		ByMood:    []Bucket{b("3", "calm", 2)},
	}
	if got := ExportSummary(s, sid("3")); got != "type,song_index,key,count\nemotion,3,joy,5\nmood,3,calm,2" {
		t.Errorf("unexpected export %q", got)
	}
}
