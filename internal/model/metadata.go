package model

// TrackMetadata is the single canonical set of tag values for one track,
// computed by merging fetch-provided and recognition-provided information
// under a fixed precedence policy (recognized values win, fetch values
// fill the gaps).
//
// Title and Artist are never both empty: the resolver falls back to the
// entry's cleaned raw title and uploader when the recognizer returns a
// track without those fields.
type TrackMetadata struct {
	Title  string
	Artist string
	Album  string
	Year   string
	Genre  string

	// CoverArtURL points at the cover image to embed, empty when the
	// recognizer offered none.
	CoverArtURL string

	// Description and SourcePageURL are carried through from the fetch
	// entry, never from recognition.
	Description   string
	SourcePageURL string
}
