// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimiterIdleTTL is how long a client's bucket is kept after its last
// request. It is raised to the refill time when that is longer.
const LimiterIdleTTL = 3 * time.Minute

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets untouched for
// the idle TTL are dropped on a later call.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
	onReject  func()
}

// NewRateLimiter allows perSecond requests per client with the given burst.
// A perSecond of 0 disables limiting.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	idle := LimiterIdleTTL
	if perSecond > 0 {
		// A bucket idle for this long is full again, so forgetting it
		// changes nothing for the client.
		if refill := time.Duration(float64(burst) / perSecond * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		idle:     idle,
		now:      time.Now,
	}
}

// OnReject registers a hook run for every rejected request.
func (rl *RateLimiter) OnReject(fn func()) {
	rl.onReject = fn
}

// Allow reports whether a request from key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	if rl == nil || rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if rl.lastSweep.IsZero() {
		rl.lastSweep = now
	}
	if now.Sub(rl.lastSweep) >= rl.idle {
		for k, v := range rl.visitors {
			if now.Sub(v.seen) >= rl.idle {
				delete(rl.visitors, k)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.seen = now
	return v.lim.AllowN(now, 1)
}

// Len is the number of client buckets currently held.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Wrap rejects requests over the limit with 429 Too Many Requests. The
// client key comes from ClientIP, so put Proxies.Wrap in front of it.
func (rl *RateLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if !rl.Allow(ip) {
			slog.Warn("rate limit exceeded", "path", r.URL.Path, "client_ip", ip)
			if rl.onReject != nil {
				rl.onReject()
			}
			ErrorResponse(w, http.StatusTooManyRequests, "Too many submissions, slow down")
			return
		}
		next(w, r)
	}
}
