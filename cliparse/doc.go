// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5001)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: Connection string (default for sqlite: file:songmood.db)
  - SongsPath: Song queue JSON (default: songs.json)
  - TaxonomyPath: Emotion tree JSON (bundled copy if empty)
  - AdminKey: Required X-Admin-Key value for admin routes (open if empty)
  - IPHashSalt: Salt for stored client IP hashes
  - SubmitRate: Submissions per second per client IP (default: 2, 0 disables)
  - TrustedProxies: Proxy addresses or CIDRs whose forwarding headers are believed
  - CORSOrigins: Browser origins allowed to call the API (any, without credentials, if empty)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-songs        Songs file
	-taxonomy     Taxonomy file
	-admin-key    Admin key
	-ip-salt      IP hash salt
	-submit-rate      Submit rate limit
	-trusted-proxies  Trusted proxies (comma-separated)
	-cors-origins     CORS origins (comma-separated)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	SONGS_PATH    → -songs
	TAXONOMY_PATH → -taxonomy
	ADMIN_KEY     → -admin-key
	IP_HASH_SALT  → -ip-salt
	SUBMIT_RATE     → -submit-rate
	TRUSTED_PROXIES → -trusted-proxies
	CORS_ORIGINS    → -cors-origins

A .env file in the working directory is loaded first; variables already
present in the environment are not overwritten. CLI flags take precedence
over both.

# Validation

ParseFlags returns an error when:

  - PORT or SUBMIT_RATE cannot be parsed
  - a trusted proxy is not an IP address or CIDR range
  - a CORS origin has no scheme
  - the database type is not sqlite or postgres
  - postgres is selected without a DATABASE_URL
*/
package cliparse
