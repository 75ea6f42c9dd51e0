package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Result is a recognition service response. A nil Track means the
// service found no match.
type Result struct {
	Track *Track `json:"track"`
}

// Track is the recognized track payload.
type Track struct {
	// Title is the recognized song title.
	Title string `json:"title"`

	// Subtitle is the recognized artist name.
	Subtitle string `json:"subtitle"`

	Images   Images    `json:"images"`
	Genres   Genres    `json:"genres"`
	Sections []Section `json:"sections"`
}

// Images holds the track's artwork URLs.
type Images struct {
	CoverArt   string `json:"coverart"`
	Background string `json:"background"`
}

// Genres holds the track's genre classification.
type Genres struct {
	Primary string `json:"primary"`
}

// Section is one structured metadata section of the response.
type Section struct {
	Metadata []MetadataItem `json:"metadata"`
}

// MetadataItem is one key/value pair within a section, keyed by a
// display title such as "Album" or "Released".
type MetadataItem struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Recognizer identifies a track from an audio file.
type Recognizer interface {
	Recognize(ctx context.Context, filePath string) (*Result, error)
}

// Client talks to an HTTP recognition service.
//
// The service accepts a raw MP3 body and answers with the track
// payload described above.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a recognition client for the given endpoint.
// A non-positive timeout falls back to 45 seconds.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Recognize implements Recognizer by POSTing the sample file to the
// service and decoding its JSON response.
func (c *Client) Recognize(ctx context.Context, filePath string) (*Result, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition service: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding recognition response: %w", err)
	}
	return &result, nil
}
