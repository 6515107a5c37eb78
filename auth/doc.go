// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin key check and IP hashing.

# Admin Key

Admin endpoints require the configured key in the X-Admin-Key header:

	err := auth.ValidateAdminKey(r.Header.Get(auth.AdminKeyHeader), cfg.AdminKey)

The comparison is constant time. With no key configured every request
passes, which matches a single-operator session on a local network.

# IP Hashing

Submissions store a salted hash of the client address instead of the
address itself:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
