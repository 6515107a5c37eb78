// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command analyze writes the per-song summary CSV files from the response
// store.
//
//	analyze -t sqlite -d file:songmood.db -o ./data -song 3
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/songmood/admin"
	"github.com/danielhkuo/songmood/catalog"
	"github.com/danielhkuo/songmood/cliparse"
	"github.com/danielhkuo/songmood/db"
	"github.com/danielhkuo/songmood/models"
	"github.com/danielhkuo/songmood/summary"
)

// Output file names.
const (
	EmotionFile = "summary_by_emotion.csv"
	Level1File  = "summary_by_level1.csv"
	MoodFile    = "summary_by_mood.csv"
)

// previewRows is how many rows of each file are echoed to stdout.
const previewRows = 5

type options struct {
	dbType    string
	dbURL     string
	songsPath string
	outDir    string
	song      string
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options

	if err := godotenv.Load(cliparse.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return options{}, fmt.Errorf("invalid env file %s: %w", cliparse.EnvFile, err)
	}

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.StringVar(&opts.dbType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&opts.dbURL, "d", "", "Database URL")
	fs.StringVar(&opts.songsPath, "songs", "", "Path to the songs JSON file, for titles")
	fs.StringVar(&opts.outDir, "o", ".", "Output directory")
	fs.StringVar(&opts.song, "song", "", "Also export one song (one-based index) as summary_song_N.csv")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.dbType == "" {
		opts.dbType = os.Getenv("DATABASE_TYPE")
		if opts.dbType == "" {
			opts.dbType = db.TypeSQLite
		}
	}
	if opts.dbURL == "" {
		opts.dbURL = os.Getenv("DATABASE_URL")
	}
	if opts.dbURL == "" {
		if opts.dbType == db.TypePostgres {
			return options{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		opts.dbURL = cliparse.DefaultSQLiteURL
	}
	if opts.songsPath == "" {
		opts.songsPath = os.Getenv("SONGS_PATH")
	}

	return opts, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	conn, err := db.Open(opts.dbType, opts.dbURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn); err != nil {
		return err
	}

	rows, err := db.AllResponses(ctx, conn)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No responses found.")
		return nil
	}

	s := summary.Build(rows)

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct {
		name    string
		column  string
		buckets []summary.Bucket
	}{
		{EmotionFile, "emotion", s.ByEmotion},
		{Level1File, "level1", s.ByLevel1},
		{MoodFile, "mood", s.ByMood},
	}
	for i, f := range files {
		if err := writeBuckets(filepath.Join(opts.outDir, f.name), f.column, f.buckets); err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, f.name)
		preview(out, f.column, f.buckets)
	}

	if opts.song != "" {
		name, err := exportSong(opts.outDir, s, models.StringID(opts.song))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n", name)
	}

	fmt.Fprintf(out, "\n%s rows from %s songs\n",
		humanize.Comma(int64(len(rows))), humanize.Comma(int64(len(s.BySong))))

	if opts.songsPath != "" {
		fmt.Fprintln(out)
		printBySong(out, admin.BySongTable(s, catalog.LoadSongs(opts.songsPath)))
	}

	slog.Info("summary written", "dir", opts.outDir, "rows", len(rows))
	return nil
}

func writeBuckets(path, column string, buckets []summary.Bucket) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"song_index", column, "count"}); err != nil {
		return err
	}
	for _, b := range buckets {
		if err := w.Write([]string{b.SongIndex.String(), b.Key, strconv.Itoa(b.Count)}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// exportSong writes the per-song export of the admin view, quoted.
func exportSong(dir string, s summary.Summary, songIndex models.ID) (string, error) {
	if _, ok := songIndex.Int(); !ok {
		return "", fmt.Errorf("song index must be a number, got %q", songIndex)
	}

	body, err := summary.ExportQuotedCSV(songIndex, s.ByEmotion, s.ByLevel1, s.ByMood)
	if err != nil {
		return "", fmt.Errorf("failed to export song %s: %w", songIndex, err)
	}

	name := "summary_song_" + songIndex.String() + ".csv"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return name, nil
}

func preview(out io.Writer, column string, buckets []summary.Bucket) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "song_index\t%s\tcount\n", column)
	for _, b := range buckets[:min(previewRows, len(buckets))] {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.SongIndex, b.Key, humanize.Comma(int64(b.Count)))
	}
	tw.Flush()
}

func printBySong(out io.Writer, rows []admin.SongRow) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "song\ttitle\tparticipants\tmood\temotion\ttotal")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n",
			r.SongIndex, r.Title, r.UniqueParticipants, r.MoodCount, r.EmotionCount, r.TotalRows)
	}
	tw.Flush()
}
