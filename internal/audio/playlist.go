package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/trackfetch/trackfetch/internal/io"
)

// PlaylistTrack is one finished track referenced from a playlist file.
type PlaylistTrack struct {
	// Path is the track's final on-disk location.
	Path string

	// Artist and Title feed the extended-info line.
	Artist string
	Title  string
}

// M3U renders an M3U playlist for the given tracks. Paths are written
// relative (file name only), assuming the playlist sits next to the
// tracks. With extended info enabled, each track gets an #EXTINF line;
// durations are unknown at this point and written as -1.
func M3U(tracks []PlaylistTrack, extended bool) string {
	var sb strings.Builder

	if extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range tracks {
		if extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", track.Artist, track.Title))
		}
		sb.WriteString(filepath.Base(track.Path) + "\n")
	}

	return sb.String()
}

// WritePlaylist writes an M3U playlist file next to a playlist job's
// tracks.
func WritePlaylist(path string, tracks []PlaylistTrack, extended bool) error {
	return ioutils.WriteFile(path, []byte(M3U(tracks, extended)))
}
