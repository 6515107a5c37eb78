// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package annotation

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/songmood/normalize"
)

// Names of the exclusive "none of these" category, compared by key.
var exclusiveKeys = map[string]bool{
	"hicbiri": true,
	"none":    true,
}

var (
	ErrDuplicateCategory = errors.New("duplicate emotion category")
	ErrDuplicateItem     = errors.New("duplicate emotion within category")
	ErrDuplicateMood     = errors.New("duplicate mood")
)

//go:embed taxonomy_default.json
var bundledTaxonomy []byte

// Category is a level-1 emotion group and its level-2 labels, in display order.
type Category struct {
	Label string
	Items []string
}

// Taxonomy is the emotion tree shown to participants.
//
// It decodes from {"current_mood": [...], "song_emotions": {"<level1>": [...]}}
// and keeps the object key order of song_emotions.
type Taxonomy struct {
	Moods      []string
	Categories []Category
}

// IsExclusive reports whether label names the "none of these" category.
func IsExclusive(label string) bool {
	return exclusiveKeys[normalize.Key(label)]
}

// Validate checks label uniqueness by key.
func (t Taxonomy) Validate() error {
	moods := make(map[string]bool, len(t.Moods))
	for _, m := range t.Moods {
		k := normalize.Key(m)
		if moods[k] {
			return fmt.Errorf("%w: %q", ErrDuplicateMood, m)
		}
		moods[k] = true
	}

	categories := make(map[string]bool, len(t.Categories))
	for _, c := range t.Categories {
		k := normalize.Key(c.Label)
		if categories[k] {
			return fmt.Errorf("%w: %q", ErrDuplicateCategory, c.Label)
		}
		categories[k] = true

		items := make(map[string]bool, len(c.Items))
		for _, item := range c.Items {
			ik := normalize.Key(item)
			if items[ik] {
				return fmt.Errorf("%w: %q in %q", ErrDuplicateItem, item, c.Label)
			}
			items[ik] = true
		}
	}
	return nil
}

// Clone returns a deep copy.
func (t Taxonomy) Clone() Taxonomy {
	out := Taxonomy{
		Moods:      append([]string(nil), t.Moods...),
		Categories: make([]Category, len(t.Categories)),
	}
	for i, c := range t.Categories {
		out.Categories[i] = Category{Label: c.Label, Items: append([]string(nil), c.Items...)}
	}
	return out
}

func (t *Taxonomy) UnmarshalJSON(data []byte) error {
	var raw struct {
		CurrentMood  []string        `json:"current_mood"`
		SongEmotions json.RawMessage `json:"song_emotions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	categories, err := decodeCategories(raw.SongEmotions)
	if err != nil {
		return fmt.Errorf("song_emotions: %w", err)
	}

	t.Moods = raw.CurrentMood
	t.Categories = categories
	return nil
}

func (t Taxonomy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	moods := t.Moods
	if moods == nil {
		moods = []string{}
	}
	moodJSON, err := json.Marshal(moods)
	if err != nil {
		return nil, err
	}

	buf.WriteString(`{"current_mood":`)
	buf.Write(moodJSON)
	buf.WriteString(`,"song_emotions":{`)
	for i, c := range t.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(c.Label)
		if err != nil {
			return nil, err
		}
		items := c.Items
		if items == nil {
			items = []string{}
		}
		itemJSON, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		buf.Write(itemJSON)
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}

// decodeCategories walks the song_emotions object token by token so the
// category order survives decoding.
func decodeCategories(data json.RawMessage) ([]Category, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected object")
	}

	var categories []Category
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		label, ok := tok.(string)
		if !ok {
			return nil, errors.New("expected category label")
		}

		var items []string
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("category %q: %w", label, err)
		}
		categories = append(categories, Category{Label: label, Items: items})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return categories, nil
}

var parseBundled = sync.OnceValues(func() (Taxonomy, error) {
	var t Taxonomy
	if err := json.Unmarshal(bundledTaxonomy, &t); err != nil {
		return Taxonomy{}, fmt.Errorf("bundled taxonomy: %w", err)
	}
	return t, nil
})

// DefaultTaxonomy returns the bundled copy of the emotion tree.
func DefaultTaxonomy() Taxonomy {
	t, err := parseBundled()
	if err != nil {
		// The bundled file is compiled in; a parse failure is a build defect.
		panic(err)
	}
	return t.Clone()
}

// TaxonomySource fetches the emotion tree, typically over HTTP.
type TaxonomySource interface {
	Taxonomy(ctx context.Context) (Taxonomy, error)
}

// LoadTaxonomy fetches the taxonomy from src and falls back to the bundled
// copy when src is nil, fails, or returns an invalid tree. The boolean
// reports whether the fallback was used.
func LoadTaxonomy(ctx context.Context, src TaxonomySource) (Taxonomy, bool) {
	if src == nil {
		return DefaultTaxonomy(), true
	}

	t, err := src.Taxonomy(ctx)
	if err == nil {
		err = t.Validate()
	}
	if err != nil {
		slog.Warn("taxonomy source unavailable, using bundled copy", "error", err)
		return DefaultTaxonomy(), true
	}
	return t, false
}
