package fetch

import (
	"context"

	"github.com/trackfetch/trackfetch/internal/model"
)

// ProgressFunc receives byte-level download progress. total is zero
// when the extractor cannot estimate the final size.
type ProgressFunc func(downloaded, total int64)

// Result is everything one extraction produced.
type Result struct {
	// Entries holds one FetchEntry per retrieved media item. A plain
	// video URL yields one entry, a playlist URL its non-empty items.
	Entries []model.FetchEntry

	// PlaylistTitle names the playlist subdirectory the entries were
	// stored under. Empty for non-playlist extractions.
	PlaylistTitle string
}

// Fetcher extracts the best available audio for a URL.
type Fetcher interface {
	Extract(ctx context.Context, url string, playlist bool, onProgress ProgressFunc) (*Result, error)
}
