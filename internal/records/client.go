// Package records is a small client for the tabular records service that
// stores requests, timespans and availability.
package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Record is one row as returned by the service. Field names are the
// service's column ids, values are untyped JSON (numbers as json.Number).
type Record struct {
	ID     int64          `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Fields is a write payload keyed by column id.
type Fields map[string]any

// Filter restricts a read to rows whose column value is one of the listed values.
type Filter map[string][]any

// Patch is a partial update for one row.
type Patch struct {
	ID     int64
	Fields Fields
}

// Store is the subset of the records service the application needs.
type Store interface {
	GetRecords(ctx context.Context, table string, filter Filter) ([]Record, error)
	AddRecords(ctx context.Context, table string, rows []Fields) ([]int64, error)
	PatchRecords(ctx context.Context, table string, patches []Patch) error
	DeleteRecords(ctx context.Context, table string, ids []int64) error
}

// Config holds connection settings for one document.
type Config struct {
	RootURL string
	APIKey  string
	DocID   string
	Timeout time.Duration
}

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("records: status %d: %s", e.Status, e.Body)
}

// Client talks to the records service over HTTP.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a client. A zero Timeout leaves the http.Client default.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) tableURL(table, suffix string) string {
	return strings.TrimRight(c.cfg.RootURL, "/") + "/api/docs/" +
		url.PathEscape(c.cfg.DocID) + "/tables/" + url.PathEscape(table) + suffix
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("records: encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return fmt.Errorf("records: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("records: %s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPError{Status: resp.StatusCode, Body: string(text)}
	}
	if out == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("records: decode response: %w", err)
	}
	return nil
}

// GetRecords reads rows of table matching filter. A nil filter reads all rows.
func (c *Client) GetRecords(ctx context.Context, table string, filter Filter) ([]Record, error) {
	u := c.tableURL(table, "/records")
	if len(filter) > 0 {
		f, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("records: encode filter: %w", err)
		}
		u += "?" + url.Values{"filter": {string(f)}}.Encode()
	}

	var out struct {
		Records []Record `json:"records"`
	}
	if err := c.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

type writeRecord struct {
	ID     int64  `json:"id,omitempty"`
	Fields Fields `json:"fields"`
}

// AddRecords inserts rows and returns their new ids.
func (c *Client) AddRecords(ctx context.Context, table string, rows []Fields) ([]int64, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	body := struct {
		Records []writeRecord `json:"records"`
	}{Records: make([]writeRecord, len(rows))}
	for i, r := range rows {
		body.Records[i] = writeRecord{Fields: r}
	}

	var out struct {
		Records []struct {
			ID int64 `json:"id"`
		} `json:"records"`
	}
	if err := c.do(ctx, http.MethodPost, c.tableURL(table, "/records"), body, &out); err != nil {
		return nil, err
	}
	ids := make([]int64, len(out.Records))
	for i, r := range out.Records {
		ids[i] = r.ID
	}
	return ids, nil
}

// PatchRecords updates the given fields of existing rows.
func (c *Client) PatchRecords(ctx context.Context, table string, patches []Patch) error {
	if len(patches) == 0 {
		return nil
	}
	body := struct {
		Records []writeRecord `json:"records"`
	}{Records: make([]writeRecord, len(patches))}
	for i, p := range patches {
		body.Records[i] = writeRecord{ID: p.ID, Fields: p.Fields}
	}
	return c.do(ctx, http.MethodPatch, c.tableURL(table, "/records"), body, nil)
}

// DeleteRecords removes rows by id.
func (c *Client) DeleteRecords(ctx context.Context, table string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodPost, c.tableURL(table, "/data/delete"), ids, nil)
}
