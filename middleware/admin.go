// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/songmood/auth"
)

// RequireAdminKey rejects requests whose X-Admin-Key header does not match
// key. An empty key lets every request through.
func RequireAdminKey(key string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.ValidateAdminKey(r.Header.Get(auth.AdminKeyHeader), key); err != nil {
			slog.Warn("admin request rejected", "path", r.URL.Path, "client_ip", ClientIP(r))
			ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
			return
		}
		next(w, r)
	}
}
