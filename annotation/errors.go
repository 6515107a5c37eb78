// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package annotation

import "errors"

var (
	// ErrAlreadySubmitted is returned for any submit or edit while the
	// session is locked for the current song.
	ErrAlreadySubmitted = errors.New("annotation already submitted for this song")

	ErrNoExclusiveCategory = errors.New("taxonomy has no exclusive category")
)

// Fields named by ValidationError.
const (
	FieldParticipantID = "participant_id"
	FieldMood          = "current_mood"
	FieldEmotions      = "selected_emotions"
	FieldSongID        = "song_id"
)

// ValidationError reports a selection that cannot be submitted as is.
// The form stays editable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
