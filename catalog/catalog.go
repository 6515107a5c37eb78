// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/danielhkuo/songmood/annotation"
	"github.com/danielhkuo/songmood/models"
)

var ErrNotAList = errors.New("songs file must hold a JSON array")

// Catalog is the static content of a session: the song queue and the
// emotion tree handed to participants.
type Catalog struct {
	Songs    []models.Song
	Taxonomy annotation.Taxonomy
}

// Load reads both files. Neither failure is fatal: a broken songs file gives
// an empty queue and a broken taxonomy file gives the bundled tree.
func Load(ctx context.Context, songsPath, taxonomyPath string) Catalog {
	return Catalog{
		Songs:    LoadSongs(songsPath),
		Taxonomy: LoadTaxonomy(ctx, taxonomyPath),
	}
}

// LoadSongs reads the song queue from path. A missing or malformed file is
// logged and treated as an empty queue.
func LoadSongs(path string) []models.Song {
	if path == "" {
		return []models.Song{}
	}

	f, err := os.Open(path)
	if err != nil {
		slog.Warn("songs file unavailable", "path", path, "error", err)
		return []models.Song{}
	}
	defer f.Close()

	songs, err := ReadSongs(f)
	if err != nil {
		slog.Warn("songs file invalid", "path", path, "error", err)
		return []models.Song{}
	}
	return songs
}

// ReadSongs decodes a JSON array of songs.
func ReadSongs(r io.Reader) ([]models.Song, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode songs: %w", err)
	}

	var songs []models.Song
	if err := json.Unmarshal(raw, &songs); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "" {
			return nil, ErrNotAList
		}
		return nil, fmt.Errorf("decode songs: %w", err)
	}
	if songs == nil {
		return nil, ErrNotAList
	}
	return songs, nil
}

// TaxonomyFile reads the emotion tree from a JSON file.
type TaxonomyFile string

func (f TaxonomyFile) Taxonomy(ctx context.Context) (annotation.Taxonomy, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return annotation.Taxonomy{}, err
	}

	var t annotation.Taxonomy
	if err := json.Unmarshal(data, &t); err != nil {
		return annotation.Taxonomy{}, fmt.Errorf("decode taxonomy %s: %w", f, err)
	}
	return t, nil
}

// LoadTaxonomy reads the taxonomy at path, or returns the bundled tree when
// path is empty or unusable.
func LoadTaxonomy(ctx context.Context, path string) annotation.Taxonomy {
	var src annotation.TaxonomySource
	if path != "" {
		src = TaxonomyFile(path)
	}
	t, _ := annotation.LoadTaxonomy(ctx, src)
	return t
}

// Total is the length of the queue.
func (c Catalog) Total() int {
	return len(c.Songs)
}

// Clamp pins index into [0, total-1], or 0 for an empty queue.
func Clamp(index, total int) int {
	if total <= 0 {
		return 0
	}
	return max(0, min(index, total-1))
}

// State describes the song at index, clamped to the queue. Title and URL are
// only set when withDetails is true.
func (c Catalog) State(index int, withDetails bool) models.SongState {
	total := c.Total()
	index = Clamp(index, total)

	state := models.SongState{Index: index, Total: total}
	if total == 0 {
		return state
	}

	song := c.Songs[index]
	state.DisplayIndex = index + 1
	state.SongID = song.ID
	if withDetails {
		title, url := song.Title, song.URL
		state.Title = &title
		state.URL = &url
	}
	return state
}
