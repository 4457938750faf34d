package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	requestTimeout = 2 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// ErrUnexpectedStatus is returned for any non-2xx response.
var ErrUnexpectedStatus = errors.New("daemon: unexpected status")

// Client reads the progress feed of a running daemon.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the daemon listening on addr (host:port or a
// full http URL). Returns nil if addr is empty.
func NewClient(addr string) *Client {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return &Client{
		baseURL: strings.TrimRight(addr, "/"),
		http:    &http.Client{},
	}
}

// BaseURL returns the normalized address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Health reports whether /healthz answers.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.get(ctx, "/healthz")
	return err
}

// FetchStatus returns the daemon's /v1/status payload.
func (c *Client) FetchStatus(ctx context.Context) (*Status, error) {
	body, err := c.get(ctx, "/v1/status")
	if err != nil {
		return nil, err
	}

	var st Status
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, fmt.Errorf("daemon: parsing status: %w", err)
	}
	return &st, nil
}

// FetchEvents returns the retained events, oldest first.
func (c *Client) FetchEvents(ctx context.Context) ([]Event, error) {
	body, err := c.get(ctx, "/v1/events")
	if err != nil {
		return nil, err
	}

	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("daemon: parsing events: %w", err)
	}
	return events, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("daemon: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "mchallenge/1.0")

	//nolint:gosec // URL is the local daemon address
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("daemon: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("daemon: reading response: %w", err)
	}
	return body, nil
}
