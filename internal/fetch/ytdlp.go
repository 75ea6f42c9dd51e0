package fetch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	ioutils "github.com/trackfetch/trackfetch/internal/io"
	"github.com/trackfetch/trackfetch/internal/model"
)

// progressPrefix marks byte-progress lines in the extractor's output.
// The template keeps them trivially distinguishable from the JSON
// entry lines, which always start with "{".
const progressPrefix = "dl "

// YtdlpFetcher runs the yt-dlp binary to extract audio.
//
// The extractor is invoked with a fixed "best available audio"
// selection and MP3 extraction, writing under the configured output
// root: <root>/<id>.mp3 for single videos, <root>/<playlist title>/<id>.mp3
// for playlists. Each completed item is printed as one JSON line on
// stdout, which is decoded into a FetchEntry.
type YtdlpFetcher struct {
	bin        string
	outputRoot string
}

// NewYtdlpFetcher creates a fetcher using the given binary and output
// root, verifying the binary is reachable.
func NewYtdlpFetcher(bin, outputRoot string) (*YtdlpFetcher, error) {
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("yt-dlp binary not found: %s", bin)
	}
	if err := ioutils.EnsureDir(outputRoot); err != nil {
		return nil, fmt.Errorf("cannot create output root %s: %w", outputRoot, err)
	}
	return &YtdlpFetcher{bin: bin, outputRoot: outputRoot}, nil
}

// entryJSON is the subset of yt-dlp's per-item JSON the pipeline needs.
type entryJSON struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Uploader      string `json:"uploader"`
	UploadDate    string `json:"upload_date"`
	Description   string `json:"description"`
	WebpageURL    string `json:"webpage_url"`
	PlaylistTitle string `json:"playlist_title"`
	Filename      string `json:"_filename"`
}

// Extract implements Fetcher.
func (f *YtdlpFetcher) Extract(ctx context.Context, url string, playlist bool, onProgress ProgressFunc) (*Result, error) {
	cmd := exec.CommandContext(ctx, f.bin, f.args(url, playlist)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	result := &Result{}
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		f.consumeLine(scanner.Text(), result, onProgress)
	}
	scanErr := scanner.Err()

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("extractor failed: %w: %s", err, lastLine(stderr.String()))
	}
	if scanErr != nil {
		return nil, fmt.Errorf("reading extractor output: %w", scanErr)
	}
	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("no audio streams found for %s", url)
	}

	return result, nil
}

func (f *YtdlpFetcher) args(url string, playlist bool) []string {
	template := filepath.Join(f.outputRoot, "%(id)s.%(ext)s")
	if playlist {
		template = filepath.Join(f.outputRoot, "%(playlist_title)s", "%(id)s.%(ext)s")
	}

	args := []string{
		"-f", "bestaudio",
		"-x", "--audio-format", "mp3",
		"--ignore-errors",
		"--newline",
		"--print-json",
		"--progress-template", progressPrefix + "%(progress.downloaded_bytes)s %(progress.total_bytes)s",
		"-o", template,
	}
	if !playlist {
		args = append(args, "--no-playlist")
	}
	return append(args, url)
}

// consumeLine routes one stdout line: JSON entry lines describe a
// finished item, progress lines carry byte counters, everything else
// is extractor chatter and ignored.
func (f *YtdlpFetcher) consumeLine(line string, result *Result, onProgress ProgressFunc) {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "{"):
		entry, playlistTitle, ok := f.parseEntry(line)
		if !ok {
			return
		}
		result.Entries = append(result.Entries, entry)
		if playlistTitle != "" {
			result.PlaylistTitle = playlistTitle
		}
	case strings.HasPrefix(line, progressPrefix):
		if onProgress == nil {
			return
		}
		if downloaded, total, ok := parseProgress(line); ok {
			onProgress(downloaded, total)
		}
	}
}

func (f *YtdlpFetcher) parseEntry(line string) (model.FetchEntry, string, bool) {
	var raw entryJSON
	if err := json.Unmarshal([]byte(line), &raw); err != nil || raw.ID == "" {
		return model.FetchEntry{}, "", false
	}

	return model.FetchEntry{
		ID:          raw.ID,
		LocalPath:   f.localPath(raw),
		Uploader:    raw.Uploader,
		RawTitle:    raw.Title,
		UploadDate:  raw.UploadDate,
		Description: raw.Description,
		WebpageURL:  raw.WebpageURL,
	}, raw.PlaylistTitle, true
}

// localPath resolves where the extracted mp3 ends up. The extractor
// reports the download path it actually wrote in _filename; only the
// extension changes after audio extraction, so swapping it for .mp3 is
// exact even when the extractor applied its own directory-name
// escaping. The derived fallback covers output lines without the
// field.
func (f *YtdlpFetcher) localPath(raw entryJSON) string {
	if raw.Filename != "" {
		return strings.TrimSuffix(raw.Filename, filepath.Ext(raw.Filename)) + ".mp3"
	}

	dir := f.outputRoot
	if raw.PlaylistTitle != "" {
		dir = filepath.Join(dir, ioutils.SanitizeFileName(raw.PlaylistTitle))
	}
	return filepath.Join(dir, raw.ID+".mp3")
}

// parseProgress decodes a "dl <downloaded> <total>" line. total may be
// "NA" when the extractor has no size estimate.
func parseProgress(line string) (downloaded, total int64, ok bool) {
	fields := strings.Fields(strings.TrimPrefix(line, progressPrefix))
	if len(fields) != 2 {
		return 0, 0, false
	}
	downloaded, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	total, err = strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		total = 0
	}
	return downloaded, total, true
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
