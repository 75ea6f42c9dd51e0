// Package fetch retrieves raw audio for a URL through an external
// extractor and reports what it downloaded as fetch entries.
//
// # Fetcher
//
// The Fetcher interface is the pipeline's only view of extraction:
//
//	result, err := fetcher.Extract(ctx, url, playlist, onProgress)
//
// Extract selects the best available audio, stores it as mp3 under the
// configured output root (playlist items in a per-playlist
// subdirectory) and invokes onProgress with byte counters while
// downloading.
//
// # YtdlpFetcher
//
// The production implementation shells out to yt-dlp, reading per-item
// JSON lines and progress-template lines from its stdout. Entry paths
// come from the filename the extractor reports, so they match what it
// actually wrote to disk.
package fetch
