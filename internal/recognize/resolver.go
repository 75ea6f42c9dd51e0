package recognize

import (
	"strings"

	"github.com/trackfetch/trackfetch/internal/model"
)

// titleTrimCutset is trimmed from both ends of a cleaned title:
// separators and punctuation that sources pad their titles with.
const titleTrimCutset = " -_?!.,;:()[]{}'\"\\"

// CleanTitle normalizes a raw source title into a plausible song title.
//
// It removes the uploader's name when it appears verbatim, truncates at
// the first "[" and at the first "(Official" marker, drops a literal
// "(Visual)" marker and trims separator characters from both ends.
// The transform is idempotent: cleaning an already-clean title is a
// no-op.
func CleanTitle(raw, uploader string) string {
	title := raw
	if uploader != "" {
		title = strings.TrimSpace(strings.ReplaceAll(title, uploader, ""))
	}
	if i := strings.Index(title, "["); i != -1 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)
	if i := strings.Index(title, "(Official"); i != -1 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)
	title = strings.TrimSpace(strings.ReplaceAll(title, "(Visual)", ""))
	return strings.Trim(title, titleTrimCutset)
}

// Resolve merges a fetch entry with a recognized track into the
// canonical tag values.
//
// Recognized values win: title and artist come from the track, falling
// back to the entry's cleaned title and uploader only when the track
// omits them. Album, year and genre start from entry-derived defaults
// and are overwritten by the track's structured metadata section when
// present (case-insensitive key match; a released/year value is
// truncated to its leading year component). Description and source URL
// always come from the entry.
//
// A nil track resolves to entry-derived values alone. The pipeline
// never reaches this point without a recognized track, but the
// function stays total for other callers.
func Resolve(entry model.FetchEntry, track *Track) model.TrackMetadata {
	if track == nil {
		track = &Track{}
	}

	meta := model.TrackMetadata{
		Title:         track.Title,
		Artist:        track.Subtitle,
		Year:          entry.UploadYear(),
		Genre:         track.Genres.Primary,
		Description:   entry.Description,
		SourcePageURL: entry.WebpageURL,
	}

	if meta.Title == "" {
		meta.Title = CleanTitle(entry.RawTitle, entry.Uploader)
	}
	if meta.Artist == "" {
		meta.Artist = entry.Uploader
	}

	if len(track.Sections) > 0 {
		for _, item := range track.Sections[0].Metadata {
			switch strings.ToLower(item.Title) {
			case "album":
				meta.Album = item.Text
			case "released", "release date", "year":
				meta.Year = leadingYear(item.Text)
			case "genre":
				meta.Genre = item.Text
			}
		}
	}

	if track.Images.CoverArt != "" {
		meta.CoverArtURL = track.Images.CoverArt
	} else {
		meta.CoverArtURL = track.Images.Background
	}

	return meta
}

// leadingYear truncates a date-ish string ("2021-03-05") to its
// leading year component.
func leadingYear(s string) string {
	if i := strings.Index(s, "-"); i != -1 {
		return s[:i]
	}
	return s
}
