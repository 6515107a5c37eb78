// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package normalize turns free-form taxonomy labels into stable identifier keys.

# Algorithm

Key applies, in order:

  - trim surrounding whitespace
  - lowercase
  - fold Turkish letters (ö ü ğ ş ı ç, İ) to their Latin base letter
  - NFD decomposition with combining marks removed
  - whitespace runs become a single underscore
  - anything outside [a-z0-9_] is dropped, then underscore runs collapse

Example:

	normalize.Key("Üzgün ")        // "uzgun"
	normalize.Key("Huzurlu  Sakin") // "huzurlu_sakin"

Keys are composed into namespaced identifiers elsewhere: "mood.<key>" for moods and
"<level1>.<level2>" for emotion pairs.
*/
package normalize
