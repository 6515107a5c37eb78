// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/songmood/annotation"
	"github.com/danielhkuo/songmood/catalog"
	"github.com/danielhkuo/songmood/cliparse"
	"github.com/danielhkuo/songmood/db"
	"github.com/danielhkuo/songmood/models"
)

// TestDBURL is an in-memory SQLite database, private to each connection pool
const TestDBURL = ":memory:"

// TestTimestamp is the timestamp used by seeded rows
const TestTimestamp = "2025-03-01T20:15:00.000Z"

// SetupTestDB creates a fresh in-memory database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5001,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		IPHashSalt:   "test-ip-salt",
	}
}

// TestSongs is a three-song queue with ids 101, 102, 103
func TestSongs() []models.Song {
	return []models.Song{
		{ID: models.IntID(101), Title: "Gel", URL: "https://example.com/1"},
		{ID: models.IntID(102), Title: "Git", URL: "https://example.com/2"},
		{ID: models.IntID(103), Title: "Kal", URL: "https://example.com/3"},
	}
}

// TestCatalog returns TestSongs with the bundled taxonomy
func TestCatalog() catalog.Catalog {
	return catalog.Catalog{
		Songs:    TestSongs(),
		Taxonomy: annotation.DefaultTaxonomy(),
	}
}

// SetTestIndex stores the queue position
func SetTestIndex(t *testing.T, conn *sql.DB, index int) {
	t.Helper()
	if err := db.SaveIndex(context.Background(), conn, index); err != nil {
		t.Fatalf("Failed to set queue position: %v", err)
	}
}

// SeedSubmission stores one submission: a mood row followed by emotion rows
func SeedSubmission(t *testing.T, conn *sql.DB, songIndex int, participantID, mood string, emotions ...string) {
	t.Helper()

	keys := append([]string{mood}, emotions...)
	rows := make([]models.ResponseRow, len(keys))
	for i, k := range keys {
		rows[i] = models.ResponseRow{
			SongIndex:     songIndex,
			SongID:        models.IntID(100 + songIndex).String(),
			SongTitle:     "Song",
			ParticipantID: participantID,
			Emotion:       k,
			Timestamp:     TestTimestamp,
		}
	}

	if _, err := db.AppendResponses(context.Background(), conn, rows, ""); err != nil {
		t.Fatalf("Failed to seed submission: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
