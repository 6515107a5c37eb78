// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package annotation

import (
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/songmood/models"
	"github.com/danielhkuo/songmood/normalize"
)

// MoodKey returns the namespaced key for a mood label.
func MoodKey(label string) string {
	return models.MoodPrefix + normalize.Key(label)
}

// PairKey returns the "<level1>.<level2>" key for an emotion.
func PairKey(level1, level2 string) string {
	return normalize.Key(level1) + "." + normalize.Key(level2)
}

// Selection holds a participant's picks for the current song.
// It is not safe for concurrent use; Session guards it.
type Selection struct {
	taxonomy  Taxonomy
	moodKeys  map[string]bool
	pairKeys  map[string]bool
	exclusive string

	mood     string
	emotions []string
	none     bool
}

// NewSelection returns a selection over t.
func NewSelection(t Taxonomy) (*Selection, error) {
	s := &Selection{}
	if err := s.LoadTaxonomy(t); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadTaxonomy replaces the taxonomy and clears every pick.
func (s *Selection) LoadTaxonomy(t Taxonomy) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.taxonomy = t.Clone()
	s.moodKeys = make(map[string]bool, len(t.Moods))
	s.pairKeys = make(map[string]bool)
	s.exclusive = ""

	for _, m := range t.Moods {
		s.moodKeys[MoodKey(m)] = true
	}
	for _, c := range t.Categories {
		if IsExclusive(c.Label) {
			if s.exclusive == "" {
				s.exclusive = c.Label
			}
			continue
		}
		for _, item := range c.Items {
			s.pairKeys[PairKey(c.Label, item)] = true
		}
	}

	s.Reset()
	return nil
}

// Taxonomy returns a copy of the loaded taxonomy.
func (s *Selection) Taxonomy() Taxonomy {
	return s.taxonomy.Clone()
}

// ExclusiveCategory returns the label of the "none of these" category.
func (s *Selection) ExclusiveCategory() (string, bool) {
	return s.exclusive, s.exclusive != ""
}

// Reset clears mood, emotions and the exclusive flag.
func (s *Selection) Reset() {
	s.mood = ""
	s.emotions = nil
	s.none = false
}

// SelectMood picks a single mood, replacing any earlier pick.
func (s *Selection) SelectMood(label string) error {
	key := MoodKey(label)
	if !s.moodKeys[key] {
		return invalid(FieldMood, "unknown mood "+strings.TrimSpace(label))
	}
	s.mood = key
	return nil
}

// ToggleEmotion adds or removes an emotion pair and reports whether the pair
// is selected afterwards. While the exclusive flag is set the inputs are
// disabled and the call changes nothing.
func (s *Selection) ToggleEmotion(level1, level2 string) (bool, error) {
	if s.none {
		return false, nil
	}

	key := PairKey(level1, level2)
	if !s.pairKeys[key] {
		return false, invalid(FieldEmotions, "unknown emotion "+key)
	}

	if i := slices.Index(s.emotions, key); i >= 0 {
		s.emotions = slices.Delete(s.emotions, i, i+1)
		return false, nil
	}
	s.emotions = append(s.emotions, key)
	return true, nil
}

// SetExclusiveNone sets the "none of these" flag. Setting it clears all
// emotion pairs; clearing it re-enables toggling without restoring them.
func (s *Selection) SetExclusiveNone(flag bool) error {
	if flag && s.exclusive == "" {
		return ErrNoExclusiveCategory
	}
	s.none = flag
	if flag {
		s.emotions = nil
	}
	return nil
}

// ExclusiveNone reports the "none of these" flag.
func (s *Selection) ExclusiveNone() bool {
	return s.none
}

// SelectedMood returns "mood.<key>" when a mood is picked.
func (s *Selection) SelectedMood() (string, bool) {
	return s.mood, s.mood != ""
}

// SelectedEmotions returns the picked pairs in the order they were picked.
func (s *Selection) SelectedEmotions() []string {
	return slices.Clone(s.emotions)
}

// BuildPayload validates the picks and returns the annotation to submit.
// Checks run in order: participant, mood, emotions, song.
func (s *Selection) BuildPayload(participantID string, songID *models.ID, at time.Time) (Payload, error) {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return Payload{}, invalid(FieldParticipantID, "participant id is required")
	}
	if s.mood == "" {
		return Payload{}, invalid(FieldMood, "select a mood")
	}
	if len(s.emotions) == 0 && !s.none {
		return Payload{}, invalid(FieldEmotions, "select at least one emotion or none of these")
	}
	if songID == nil {
		return Payload{}, invalid(FieldSongID, "song list not loaded")
	}

	return Payload{
		participantID: participantID,
		songID:        *songID,
		mood:          s.mood,
		emotions:      slices.Clone(s.emotions),
		allowEmpty:    s.none,
		timestamp:     at.UTC(),
	}, nil
}
