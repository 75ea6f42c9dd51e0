package model

import "strings"

// JobState represents where a job currently is in its pipeline.
type JobState int

const (
	// StateQueued means the job was accepted but has not started yet.
	StateQueued JobState = iota

	// StateFetching means the raw audio is being retrieved.
	StateFetching

	// StateRecognizing means the track is being identified.
	StateRecognizing

	// StateTagging means metadata is being written into the container.
	StateTagging

	// StateConverting means an alternate-format copy is being produced.
	StateConverting

	// StateSucceeded is terminal: the output file exists on disk.
	StateSucceeded

	// StateFailed is terminal: a stage failed and the job was aborted.
	StateFailed
)

// String returns a human-readable state name.
func (s JobState) String() string {
	switch s {
	case StateQueued:
		return "Queued"
	case StateFetching:
		return "Fetching"
	case StateRecognizing:
		return "Recognizing"
	case StateTagging:
		return "Tagging"
	case StateConverting:
		return "Converting"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether the job has reached its final state.
// Once terminal, the job is never mutated again.
func (s JobState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Job is one user-initiated request to fetch, identify, tag and store
// one piece of audio (or a playlist's worth of audio).
//
// A Job is created by the scheduler on submission and from then on is
// mutated only by the goroutine running its pipeline. The presentation
// layer observes jobs exclusively through the event stream, never by
// reading this struct from another goroutine while the job is live.
type Job struct {
	// ID is a stable identifier derived from the submitted URL
	// (the canonicalized video id when one can be extracted).
	ID string

	// SourceURL is the original input, possibly carrying a playlist reference.
	SourceURL string

	// PlaylistAllowed controls whether a playlist reference in the URL
	// is honored or stripped before fetching.
	PlaylistAllowed bool

	// TargetFormat is the requested output format.
	TargetFormat Format

	// Progress is a percentage in [0,100], monotonically non-decreasing
	// over the job's lifetime.
	Progress int

	// State is the job's pipeline position.
	State JobState

	// Result holds the output file's base name (no extension) on success,
	// or a human-readable reason on failure.
	Result string
}

// VideoID derives the stable job identifier from a submitted URL.
//
// It extracts the value of the "v=" parameter up to a following "&list="
// marker. When the URL carries no "v=" parameter the whole URL is the
// identifier.
func VideoID(url string) string {
	idx := strings.Index(url, "?v=")
	if idx == -1 {
		idx = strings.Index(url, "v=")
		if idx == -1 {
			return url
		}
		idx += 2
	} else {
		idx += 3
	}

	rest := url[idx:]
	if end := strings.Index(rest, "&list="); end != -1 {
		return rest[:end]
	}
	return rest
}

// StripPlaylist removes a playlist reference from a URL.
//
// Everything from the first "&list=" marker onward is dropped. URLs
// without the marker are returned unchanged, which makes the function
// idempotent.
func StripPlaylist(url string) string {
	if idx := strings.Index(url, "&list="); idx != -1 {
		return url[:idx]
	}
	return url
}
