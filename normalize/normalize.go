// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letterFolds maps locale-specific letters onto their Latin base letter.
// It runs before decomposition: dotless i has no decomposition to fall back on.
var letterFolds = map[rune]rune{
	'ö': 'o', 'ü': 'u', 'ğ': 'g', 'ş': 's', 'ı': 'i', 'ç': 'c',
	'Ö': 'o', 'Ü': 'u', 'Ğ': 'g', 'Ş': 's', 'İ': 'i', 'I': 'i', 'Ç': 'c',
}

// Key canonicalizes a taxonomy label into an identifier key.
//
// The result only contains lowercase ASCII letters, digits and single
// underscores. Empty input yields the empty string. Key(Key(x)) == Key(x).
func Key(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	if s == "" {
		return ""
	}

	s = strings.Map(func(r rune) rune {
		if folded, ok := letterFolds[r]; ok {
			return folded
		}
		return r
	}, s)
	s = stripMarks(s)

	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		if isKeyRune(r) {
			b.WriteRune(r)
		}
	}

	return collapseUnderscores(b.String())
}

// Is reports whether label is already in key form.
func Is(label string) bool {
	return label != "" && Key(label) == label
}

// stripMarks decomposes s and drops combining marks.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isKeyRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}

func collapseUnderscores(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prev := false
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			if prev {
				continue
			}
			prev = true
		} else {
			prev = false
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
