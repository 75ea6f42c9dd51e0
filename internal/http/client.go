package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP GETs with a fixed User-Agent and timeout.
//
//	client := http.NewClient(60 * time.Second)
//	data, err := client.DownloadBytes(ctx, coverURL)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new client. A non-positive timeout falls back
// to 60 seconds.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "trackfetch",
	}
}

// Get performs a GET request and returns the response body.
//
// A non-200 status is an error.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// DownloadBytes downloads a small file into memory. Use it for cover
// art sized payloads only.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
