// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request with method, path, status, client_ip and
duration_ms. Responses of 500 and above are logged at error level.

# CORS Middleware

Let the participant and admin pages call the API from their own origin:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins)(mux),
	}

With no origins configured every origin is answered with "*" and no
credentials. Otherwise only listed origins are echoed back (with
credentials), and preflights from other origins get 403. Preflights allow
GET, POST, OPTIONS with headers Content-Type and X-Admin-Key.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (capped at MaxBodyBytes):

	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP

X-Forwarded-For and X-Real-IP are only believed when the direct peer is a
configured trusted proxy. The forwarded chain is read from the right,
skipping trusted hops, so a client cannot pick its own address by
prepending entries:

	proxies, err := middleware.ParseProxies(cfg.TrustedProxies)
	mux.HandleFunc("POST /api/submit", proxies.Wrap(middleware.WithLogging(h.Submit)))

	ip := middleware.ClientIP(r)

A nil *Proxies trusts nobody and uses the RemoteAddr host. The resolved
address keys the rate limiter and is hashed into each stored submission.

# Rate Limiting

RateLimiter keeps a token bucket (golang.org/x/time/rate) per client IP:

	limiter := middleware.NewRateLimiter(cfg.SubmitRate, 5)
	mux.HandleFunc("POST /api/submit", proxies.Wrap(middleware.WithLogging(limiter.Wrap(h.Submit))))

Requests over the limit get 429 Too Many Requests. Buckets idle for
LimiterIdleTTL (or the refill time, if longer) are dropped.

# Admin Routes

	mux.HandleFunc("GET /api/admin/summary", middleware.RequireAdminKey(cfg.AdminKey, h.Summary))

Requests without a matching X-Admin-Key header get 401 when a key is
configured.

# CSV

	middleware.CSVResponse(w, "summary_song_3.csv", body)
*/
package middleware
