// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/songmood/annotation"
	"github.com/danielhkuo/songmood/models"
	"github.com/danielhkuo/songmood/summary"
)

// DefaultTimeout bounds every request made with the default HTTP client.
const DefaultTimeout = 10 * time.Second

// ConnectivityError reports a request that failed in transport or came back
// with a non-2xx status. StatusCode is 0 for transport failures.
type ConnectivityError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ConnectivityError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// IsConnectivity reports whether err is or wraps a ConnectivityError.
func IsConnectivity(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}

// Client talks to the songmood server. It satisfies annotation.SongSource,
// annotation.Submitter and annotation.TaxonomySource.
type Client struct {
	baseURL  string
	http     *http.Client
	adminKey string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAdminKey sets the X-Admin-Key header on admin requests.
func WithAdminKey(key string) Option {
	return func(c *Client) { c.adminKey = key }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentSong fetches the participant view of the current song.
func (c *Client) CurrentSong(ctx context.Context) (models.SongState, error) {
	var s models.SongState
	err := c.do(ctx, http.MethodGet, "/api/current-song", nil, &s)
	return s, err
}

// Taxonomy fetches the emotion tree.
func (c *Client) Taxonomy(ctx context.Context) (annotation.Taxonomy, error) {
	var t annotation.Taxonomy
	err := c.do(ctx, http.MethodGet, "/api/taxonomy", nil, &t)
	return t, err
}

// Submit sends an annotation payload.
func (c *Client) Submit(ctx context.Context, p annotation.Payload) error {
	_, err := c.SubmitRequest(ctx, p.Request())
	return err
}

// SubmitRequest sends a raw submit body, e.g. with AdvanceSong set.
func (c *Client) SubmitRequest(ctx context.Context, req models.SubmitRequest) (models.SubmitResponse, error) {
	var resp models.SubmitResponse
	err := c.do(ctx, http.MethodPost, "/api/submit", req, &resp)
	return resp, err
}

// AdminCurrentSong fetches the current song with title and url.
func (c *Client) AdminCurrentSong(ctx context.Context) (models.SongState, error) {
	var s models.SongState
	err := c.do(ctx, http.MethodGet, "/api/admin/current-song", nil, &s)
	return s, err
}

func (c *Client) NextSong(ctx context.Context) (models.SongState, error) {
	var s models.SongState
	err := c.do(ctx, http.MethodPost, "/api/admin/next-song", nil, &s)
	return s, err
}

func (c *Client) PrevSong(ctx context.Context) (models.SongState, error) {
	var s models.SongState
	err := c.do(ctx, http.MethodPost, "/api/admin/prev-song", nil, &s)
	return s, err
}

// SetSong jumps to a zero-based index. The server clamps it.
func (c *Client) SetSong(ctx context.Context, index int) (models.SongState, error) {
	var s models.SongState
	err := c.do(ctx, http.MethodPost, "/api/admin/set-song", models.SetSongRequest{Index: *models.IntID(index)}, &s)
	return s, err
}

func (c *Client) Songs(ctx context.Context) ([]models.Song, error) {
	var songs []models.Song
	err := c.do(ctx, http.MethodGet, "/api/admin/songs", nil, &songs)
	return songs, err
}

// Responses lists raw rows, newest first. A limit <= 0 uses the server default.
func (c *Client) Responses(ctx context.Context, limit int) ([]models.ResponseRow, error) {
	path := "/api/admin/responses"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var rows []models.ResponseRow
	err := c.do(ctx, http.MethodGet, path, nil, &rows)
	return rows, err
}

func (c *Client) Participants(ctx context.Context) ([]string, error) {
	var ids []string
	err := c.do(ctx, http.MethodGet, "/api/admin/participants", nil, &ids)
	return ids, err
}

func (c *Client) Participant(ctx context.Context, id string) (models.ParticipantDetail, error) {
	var d models.ParticipantDetail
	err := c.do(ctx, http.MethodGet, "/api/admin/participant/"+url.PathEscape(id), nil, &d)
	return d, err
}

func (c *Client) Summary(ctx context.Context) (summary.Summary, error) {
	var s summary.Summary
	err := c.do(ctx, http.MethodGet, "/api/admin/summary", nil, &s)
	return s, err
}

// ExportSummary downloads the CSV export of one song.
func (c *Client) ExportSummary(ctx context.Context, songIndex models.ID) (string, error) {
	path := "/api/admin/summary/export?song_index=" + url.QueryEscape(songIndex.String())
	body, err := c.raw(ctx, http.MethodGet, path, nil)
	return string(body), err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	body, err := c.raw(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ConnectivityError{Op: method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) raw(ctx context.Context, method, path string, in any) ([]byte, error) {
	op := method + " " + path

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.adminKey != "" && strings.HasPrefix(path, "/api/admin/") {
		req.Header.Set("X-Admin-Key", c.adminKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectivityError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ConnectivityError{Op: op, StatusCode: resp.StatusCode, Err: serverError(resp.StatusCode, body)}
	}
	return body, nil
}

func serverError(status int, body []byte) error {
	var e models.ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return errors.New(e.Message)
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return errors.New(text)
	}
	return errors.New(http.StatusText(status))
}
