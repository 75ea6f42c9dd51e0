package fetch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs_SingleVideo(t *testing.T) {
	f := &YtdlpFetcher{bin: "yt-dlp", outputRoot: "/out"}
	args := f.args("https://x.test/watch?v=abc", false)

	assert.Contains(t, args, "--no-playlist")
	assert.Contains(t, args, filepath.Join("/out", "%(id)s.%(ext)s"))
	assert.Equal(t, "https://x.test/watch?v=abc", args[len(args)-1])
}

func TestArgs_Playlist(t *testing.T) {
	f := &YtdlpFetcher{bin: "yt-dlp", outputRoot: "/out"}
	args := f.args("https://x.test/watch?v=abc&list=PL1", true)

	assert.NotContains(t, args, "--no-playlist")
	assert.Contains(t, args, filepath.Join("/out", "%(playlist_title)s", "%(id)s.%(ext)s"))
}

func TestConsumeLine_EntryJSON(t *testing.T) {
	f := &YtdlpFetcher{outputRoot: "/out"}
	result := &Result{}

	line := `{"id":"abc123","title":"Artist - Song [Official Video]","uploader":"Artist",` +
		`"upload_date":"20230515","description":"desc","webpage_url":"https://x.test/watch?v=abc123"}`
	f.consumeLine(line, result, nil)

	require.Len(t, result.Entries, 1)
	e := result.Entries[0]
	assert.Equal(t, "abc123", e.ID)
	assert.Equal(t, filepath.Join("/out", "abc123.mp3"), e.LocalPath)
	assert.Equal(t, "Artist", e.Uploader)
	assert.Equal(t, "Artist - Song [Official Video]", e.RawTitle)
	assert.Equal(t, "20230515", e.UploadDate)
	assert.Equal(t, "https://x.test/watch?v=abc123", e.WebpageURL)
	assert.Empty(t, result.PlaylistTitle)
}

func TestConsumeLine_ReportedFilenameWins(t *testing.T) {
	f := &YtdlpFetcher{outputRoot: "/out"}
	result := &Result{}

	// The extractor escapes directory names its own way (here ":"
	// became a fullwidth colon); the reported _filename is the path it
	// actually wrote, so it must win over any re-derivation.
	f.consumeLine(`{"id":"v1","title":"One","playlist_title":"My Mix: Vol.1",`+
		`"_filename":"/out/My Mix： Vol.1/v1.webm"}`, result, nil)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "/out/My Mix： Vol.1/v1.mp3", result.Entries[0].LocalPath)
	assert.Equal(t, "My Mix: Vol.1", result.PlaylistTitle)
}

func TestConsumeLine_PlaylistEntryPathFallback(t *testing.T) {
	f := &YtdlpFetcher{outputRoot: "/out"}
	result := &Result{}

	f.consumeLine(`{"id":"v1","title":"One","playlist_title":"My Mix: Vol.1"}`, result, nil)

	require.Len(t, result.Entries, 1)
	// Without a reported filename the path is derived from the
	// sanitized playlist title.
	assert.Equal(t, filepath.Join("/out", "My Mix_ Vol.1", "v1.mp3"), result.Entries[0].LocalPath)
	assert.Equal(t, "My Mix: Vol.1", result.PlaylistTitle)
}

func TestConsumeLine_Progress(t *testing.T) {
	f := &YtdlpFetcher{outputRoot: "/out"}
	var gotDownloaded, gotTotal int64

	f.consumeLine("dl 2048 4096", &Result{}, func(downloaded, total int64) {
		gotDownloaded, gotTotal = downloaded, total
	})

	assert.Equal(t, int64(2048), gotDownloaded)
	assert.Equal(t, int64(4096), gotTotal)
}

func TestConsumeLine_ProgressUnknownTotal(t *testing.T) {
	f := &YtdlpFetcher{outputRoot: "/out"}
	var gotTotal int64 = -1

	f.consumeLine("dl 2048 NA", &Result{}, func(downloaded, total int64) {
		gotTotal = total
	})

	assert.Equal(t, int64(0), gotTotal)
}

func TestConsumeLine_IgnoresChatter(t *testing.T) {
	f := &YtdlpFetcher{outputRoot: "/out"}
	result := &Result{}

	f.consumeLine("[info] extracting URL", result, nil)
	f.consumeLine("", result, nil)
	f.consumeLine(`{"no_id_field":true}`, result, nil)

	assert.Empty(t, result.Entries)
}
