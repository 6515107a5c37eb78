// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/songmood/catalog"
	"github.com/danielhkuo/songmood/models"
	"github.com/danielhkuo/songmood/summary"
)

// DefaultTitle labels songs that have no title.
const DefaultTitle = "Sarki Adi"

// SongLister lists the song queue. *client.Client satisfies it.
type SongLister interface {
	Songs(ctx context.Context) ([]models.Song, error)
}

// Source is the admin read surface of the server. *client.Client satisfies it.
type Source interface {
	SongLister
	AdminCurrentSong(ctx context.Context) (models.SongState, error)
	Responses(ctx context.Context, limit int) ([]models.ResponseRow, error)
	Participants(ctx context.Context) ([]string, error)
	Summary(ctx context.Context) (summary.Summary, error)
}

// LoadSongs asks the server for the song list and falls back to the static
// songs file when the server is unreachable. The result is never nil.
func LoadSongs(ctx context.Context, src SongLister, fallbackPath string) []models.Song {
	songs, err := src.Songs(ctx)
	if err == nil {
		if songs == nil {
			songs = []models.Song{}
		}
		return songs
	}

	slog.Warn("song list unavailable, using static file", "path", fallbackPath, "error", err)
	return catalog.LoadSongs(fallbackPath)
}

// Title returns the title of song, or DefaultTitle when it has none.
func Title(song models.Song) string {
	if song.Title == "" {
		return DefaultTitle
	}
	return song.Title
}

// SongLabel is the "<n>-- <title>" label of the zero-based position i.
func SongLabel(i int, song models.Song) string {
	return fmt.Sprintf("%d-- %s", i+1, Title(song))
}

// SongRow is one line of the by-song table.
type SongRow struct {
	summary.Rollup
	Title string `json:"title"`
}

// BySongTable joins the per-song rollups with song titles. Rollups whose
// index has no song get the title "-".
func BySongTable(s summary.Summary, songs []models.Song) []SongRow {
	titles := make(map[string]string, len(songs))
	for i, song := range songs {
		titles[strconv.Itoa(i+1)] = Title(song)
	}

	rows := make([]SongRow, 0, len(s.BySong))
	for _, r := range s.BySong {
		title, ok := titles[r.SongIndex.String()]
		if !ok {
			title = "-"
		}
		rows = append(rows, SongRow{Rollup: r, Title: title})
	}
	return rows
}

// SongView is the summary panel of one song.
type SongView struct {
	Rollup      summary.Rollup
	Title       string
	TopEmotions []summary.Bucket
	TopMoods    []summary.Bucket
}

// SongSummary returns the rollup and top rankings of the song at the
// one-based songIndex.
func SongSummary(s summary.Summary, songs []models.Song, songIndex models.ID) SongView {
	title := "-"
	if n, ok := songIndex.Int(); ok && n >= 1 && n <= len(songs) {
		title = Title(songs[n-1])
	}

	return SongView{
		Rollup:      summary.SongRollup(s.BySong, songIndex),
		Title:       title,
		TopEmotions: summary.TopEmotions(s.ByEmotion, songIndex, summary.DefaultLimit),
		TopMoods:    summary.TopBySong(s.ByMood, songIndex, summary.DefaultLimit),
	}
}

// Dashboard is everything the admin view shows at once.
type Dashboard struct {
	Current      models.SongState
	Songs        []models.Song
	Responses    []models.ResponseRow
	Participants []string
	Summary      summary.Summary
	BySong       []SongRow
}

// LoadDashboard fetches the admin reads concurrently. The song list falls
// back to fallbackPath; any other failed read fails the whole load.
func LoadDashboard(ctx context.Context, src Source, fallbackPath string, responseLimit int) (Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d.Songs = LoadSongs(ctx, src, fallbackPath)
		return nil
	})
	g.Go(func() error {
		current, err := src.AdminCurrentSong(ctx)
		if err != nil {
			return fmt.Errorf("current song: %w", err)
		}
		d.Current = current
		return nil
	})
	g.Go(func() error {
		rows, err := src.Responses(ctx, responseLimit)
		if err != nil {
			return fmt.Errorf("responses: %w", err)
		}
		d.Responses = rows
		return nil
	})
	g.Go(func() error {
		ids, err := src.Participants(ctx)
		if err != nil {
			return fmt.Errorf("participants: %w", err)
		}
		d.Participants = ids
		return nil
	})
	g.Go(func() error {
		s, err := src.Summary(ctx)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		d.Summary = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d.BySong = BySongTable(d.Summary, d.Songs)
	return d, nil
}
