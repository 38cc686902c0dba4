// Package source talks to the Emergence backend: paginated REST fetches
// of historical events and an SSE subscription for live ones. All decode
// defaults are applied here at the boundary; the packages downstream only
// ever see fully-defaulted events. Reconnect policy deliberately lives
// with the caller, not here.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/emergence-sim/emergence/internal/events"
)

const (
	// DefaultPageSize matches the backend's maximum page size
	DefaultPageSize = 500
	// DefaultTimeout bounds a single REST request
	DefaultTimeout = 15 * time.Second
	// requestsPerSecond caps the page fan-out against the backend
	requestsPerSecond = 10
)

// Config holds client settings.
type Config struct {
	// BaseURL is the backend base URL, e.g. http://localhost:8000
	BaseURL string
	// PageSize is the fetch page size (default 500)
	PageSize int
	// Timeout bounds individual REST requests (default 15s)
	Timeout time.Duration
}

// Client fetches events from the Emergence backend.
type Client struct {
	baseURL  string
	pageSize int
	http     *http.Client
	limiter  *rate.Limiter
}

// New creates a backend client.
func New(cfg Config) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		pageSize: cfg.PageSize,
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// FetchRecent retrieves up to limit recent events, fanning out over pages
// concurrently. The result keeps the backend's newest-first order; short
// pages end the result early.
func (c *Client) FetchRecent(ctx context.Context, limit int) ([]*events.Event, error) {
	if limit <= 0 {
		limit = c.pageSize
	}

	pageCount := (limit + c.pageSize - 1) / c.pageSize
	pages := make([][]*events.Event, pageCount)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < pageCount; i++ {
		g.Go(func() error {
			page, err := c.fetchPage(gctx, i*c.pageSize, c.pageSize)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*events.Event
	for _, page := range pages {
		out = append(out, page...)
		if len(page) < c.pageSize {
			// The backend ran out of events; later pages are empty
			break
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fetchPage retrieves one page of events from the backend.
func (c *Client) fetchPage(ctx context.Context, offset, limit int) ([]*events.Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.baseURL + "/api/events")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("event fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("event fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read event page: %w", err)
	}

	page, err := events.DecodeEvents(body)
	if err != nil {
		return nil, err
	}
	return page, nil
}
