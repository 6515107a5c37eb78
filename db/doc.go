// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the database connection, schema and queries.

# Connecting

Open picks the driver from the configured type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL) // "sqlite" or "postgres"
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

SQLite goes through modernc.org/sqlite, PostgreSQL through lib/pq. All
queries use $N placeholders, which both drivers accept.

# Tables

  - song_state: the single row holding the admin's queue position
  - response: the append-only response log, one row per mood or emotion key

A submission writes one mood row and one row per emotion in a single
transaction. Rows share a submission_id and keep their order in seq.

# Ordering

created_ns is strictly increasing across submissions, so RecentResponses
(newest first) and AllResponses (oldest first) are total orders.
*/
package db
