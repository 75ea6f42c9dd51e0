package model

import "fmt"

// Format represents a supported output audio format.
//
// The fetcher always produces the native container (MP3). Any other
// format is reached by transcoding the tagged native file afterwards.
type Format int

const (
	// FormatMP3 is the native container produced by the fetcher.
	FormatMP3 Format = iota

	// FormatM4A is a lossy-compressed alternate container.
	FormatM4A

	// FormatFLAC is a lossless-compressed alternate container.
	FormatFLAC

	// FormatWAV is an uncompressed alternate container.
	FormatWAV
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "mp3", "":
		return FormatMP3, nil
	case "m4a":
		return FormatM4A, nil
	case "flac":
		return FormatFLAC, nil
	case "wav":
		return FormatWAV, nil
	default:
		return FormatMP3, fmt.Errorf("unsupported format %q", s)
	}
}

// String returns the format's conventional name.
func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatM4A:
		return "m4a"
	case FormatFLAC:
		return "flac"
	case FormatWAV:
		return "wav"
	default:
		return "mp3"
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// IsNative reports whether files in this format come straight from the
// fetcher and need no conversion step.
func (f Format) IsNative() bool {
	return f == FormatMP3
}
