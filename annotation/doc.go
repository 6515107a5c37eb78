// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package annotation holds the participant-side annotation rules.

# Selection

A Selection is built over a Taxonomy and records one mood, a set of emotion
pairs, and the exclusive "none of these" flag:

	sel, _ := annotation.NewSelection(annotation.DefaultTaxonomy())
	sel.SelectMood("Sakin")               // "mood.sakin"
	sel.ToggleEmotion("Huzur", "Dingin")  // "huzur.dingin"
	payload, err := sel.BuildPayload("p-17", songID, time.Now())

The category whose key is "hicbiri" or "none" is exclusive: setting it clears
every pair and disables ToggleEmotion until it is cleared.

# Session and lock

A Session wraps a Selection with the submission lock:

	Unlocked --Submit ok--> Locked --song id changes--> Unlocked

Submits while Locked fail with ErrAlreadySubmitted and never reach the network.
A Poller feeds the session with the current song every two seconds; a changed
song id clears the picks and unlocks the form. With WithRefreshOnSubmit it
also polls once after every successful submit; WithAfterSubmit registers
any other post-submit hook.

# Errors

  - *ValidationError: missing participant, mood, emotions, or song
  - ErrAlreadySubmitted: submit while locked
  - connectivity failures come from the Submitter / SongSource (see package client)
*/
package annotation
