// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package annotation

import (
	"context"
	"time"

	"github.com/danielhkuo/songmood/models"
)

// DefaultPollInterval is the cadence of current-song polling.
const DefaultPollInterval = 2 * time.Second

// SongSource reports the song currently being played.
type SongSource interface {
	CurrentSong(ctx context.Context) (models.SongState, error)
}

// Ticker delivers poll ticks. Tests supply one they can fire by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Poller drives song-change detection for a session for as long as the
// session is active. A failed poll is reported and retried on the next tick.
type Poller struct {
	source    SongSource
	session   *Session
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	onError   func(error)
	refresh   bool
}

type PollerOption func(*Poller)

func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

func WithTicker(newTicker func(time.Duration) Ticker) PollerOption {
	return func(p *Poller) { p.newTicker = newTicker }
}

// WithErrorHandler receives poll failures, e.g. to show a connectivity notice.
func WithErrorHandler(fn func(error)) PollerOption {
	return func(p *Poller) { p.onError = fn }
}

// WithRefreshOnSubmit polls once right after each successful submit on the
// session, so an advance made by the submit is seen without waiting a tick.
// It replaces any after-submit hook set on the session.
func WithRefreshOnSubmit() PollerOption {
	return func(p *Poller) { p.refresh = true }
}

func NewPoller(source SongSource, session *Session, opts ...PollerOption) *Poller {
	p := &Poller{
		source:    source,
		session:   session,
		interval:  DefaultPollInterval,
		newTicker: newTimeTicker,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.refresh {
		session.setAfterSubmit(func(ctx context.Context, _ Payload) {
			_ = p.PollOnce(ctx)
		})
	}
	return p
}

// PollOnce fetches the current song and applies it to the session.
// Errors never touch the lock state.
func (p *Poller) PollOnce(ctx context.Context) error {
	state, err := p.source.CurrentSong(ctx)
	if err != nil {
		if p.onError != nil {
			p.onError(err)
		}
		return err
	}
	p.session.Observe(state)
	return nil
}

// Run polls immediately and then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	_ = p.PollOnce(ctx)

	ticker := p.newTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			_ = p.PollOnce(ctx)
		}
	}
}
