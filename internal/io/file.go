package ioutils

import (
	"os"
	"regexp"
	"strings"
)

var (
	// Characters invalid in file names on at least one supported
	// platform: < > : " / \ | ? * and control characters.
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots = regexp.MustCompile(`\.+$`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// SanitizeFileName replaces characters that are invalid in file or
// folder names so outputs are valid across operating systems.
//
// Invalid characters become underscores, trailing dots are removed
// (a Windows restriction), runs of whitespace collapse to one space
// and trailing whitespace is dropped.
//
//	SanitizeFileName(`AC/DC - "Song"?`) // `AC_DC - _Song__`
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multiSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and any missing parents.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteFile writes data to path, creating or truncating the file.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
