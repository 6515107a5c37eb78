// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the songmood API server.

songmood collects mood and emotion annotations from participants while an
administrator steps through a list of songs. Each participant picks one
mood and any number of emotions (or "none of these") per song; the admin
reviews raw responses and per-song summaries.

# Starting the Server

With no configuration the server listens on :5001 with a local SQLite file:

	go run . -songs songs.json

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

# Configuration

  - PORT (-p): Server port (default: 5001)
  - DATABASE_TYPE (-t): sqlite or postgres
  - DATABASE_URL (-d): Connection string
  - SONGS_PATH (-songs): Song queue JSON
  - TAXONOMY_PATH (-taxonomy): Emotion tree JSON
  - ADMIN_KEY (-admin-key): Protects /api/admin routes
  - SUBMIT_RATE (-submit-rate): Per-IP submit rate
  - TRUSTED_PROXIES (-trusted-proxies): Proxies whose X-Forwarded-For is believed
  - CORS_ORIGINS (-cors-origins): Origins of the participant and admin pages

# Architecture

  - handlers: HTTP request handlers (songs, submit, responses, summary)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, client IP, JSON helpers, rate limiting, admin key
  - models: Request/response types
  - db: Schema and queries
  - catalog: Songs and taxonomy files
  - metric: Prometheus collectors
  - annotation, normalize, summary: participant and aggregation logic
  - client, admin: Go consumers of the API

The offline analyzer lives in cmd/analyze.
*/
package main
