// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// AdminKeyHeader carries the admin key on admin requests.
const AdminKeyHeader = "X-Admin-Key"

var ErrInvalidAdminKey = errors.New("invalid admin key")

// ValidateAdminKey checks a presented key against the configured one in
// constant time. An empty configured key disables the check.
func ValidateAdminKey(presented, configured string) error {
	if configured == "" {
		return nil
	}
	if !hmac.Equal([]byte(presented), []byte(configured)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits), enough to tell submitters apart
	return hex.EncodeToString(sum[:8])
}
