package audio

import (
	"os"
	"path/filepath"
	"strings"

	ioutils "github.com/trackfetch/trackfetch/internal/io"
)

// FileName builds the display filename for a tagged track:
// "{artist} - {title}{ext}".
//
// Slashes in either input become underscores, a title left with an
// unmatched opening parenthesis by upstream truncation gets its
// closing parenthesis back, and any remaining platform-illegal
// characters are sanitized away.
func FileName(artist, title, ext string) string {
	artist = strings.ReplaceAll(artist, "/", "_")
	title = strings.ReplaceAll(title, "/", "_")

	if strings.Contains(title, "(") && !strings.Contains(title, ")") {
		title += ")"
	}

	return ioutils.SanitizeFileName(artist+" - "+title) + ext
}

// Rename moves a tagged file onto its display name within the same
// directory and returns the new path.
//
// The caller decides what a rename failure means; the file at src is
// untouched when an error is returned.
func Rename(src, artist, title string) (string, error) {
	dst := filepath.Join(filepath.Dir(src), FileName(artist, title, filepath.Ext(src)))
	if err := os.Rename(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// BaseName returns a path's file name without its extension, the form
// job outcomes report.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
