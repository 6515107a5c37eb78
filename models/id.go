// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("id must be a JSON number or string")

// ID is an opaque identifier that may travel as a JSON number or a JSON string.
// It keeps the token it was built from and encodes back the same way.
// Equal and Int look at the canonical text, so 3 and "3" match.
type ID struct {
	raw    string
	number bool
}

// StringID is the ID sent as the JSON string s.
func StringID(s string) ID {
	return ID{raw: s}
}

// NumberID is the ID sent as the JSON number n.
func NumberID(n int) ID {
	return ID{raw: strconv.Itoa(n), number: true}
}

// NewID returns a pointer to StringID(s).
func NewID(s string) *ID {
	id := StringID(s)
	return &id
}

// IntID returns a pointer to NumberID(n).
func IntID(n int) *ID {
	id := NumberID(n)
	return &id
}

// String returns the token as received.
func (id ID) String() string {
	return id.raw
}

// IsNumber reports whether the ID travels as a JSON number.
func (id ID) IsNumber() bool {
	return id.number
}

// Equal compares canonical forms.
func (id ID) Equal(other ID) bool {
	return canonical(id.raw) == canonical(other.raw)
}

// Int returns the integer value of the ID when it is numeric.
func (id ID) Int() (int, bool) {
	n, err := strconv.Atoi(canonical(id.raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.number {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidID
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	case 'n':
		// null leaves the pointer untouched; decoding into *ID keeps it nil.
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return ErrInvalidID
		}
		*id = ID{raw: n.String(), number: true}
		return nil
	}
}

// canonical trims whitespace and rewrites integral numbers without
// leading zeros, exponent or a trailing ".0" so numeric and textual forms agree.
func canonical(s string) string {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
