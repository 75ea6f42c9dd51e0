package model

// FetchEntry represents one retrieved media item.
//
// A single job yields one entry for a plain video URL, or several when
// the source is a playlist and playlist mode is allowed. Entries only
// live for the duration of one pipeline execution: by the end of the
// job the file at LocalPath has been renamed or deleted.
type FetchEntry struct {
	// ID is the media item's canonical identifier at the source.
	ID string

	// LocalPath is where the fetcher stored the raw audio container.
	LocalPath string

	// Uploader is the source channel or account name.
	Uploader string

	// RawTitle is the title exactly as the source reports it.
	RawTitle string

	// UploadDate is the source's upload date, formatted YYYYMMDD.
	// May be empty when the source does not report one.
	UploadDate string

	// Description is the source page's long description.
	Description string

	// WebpageURL is the canonical source page URL.
	WebpageURL string
}

// UploadYear returns the leading four digits of the upload date,
// or an empty string when no date is known.
func (e FetchEntry) UploadYear() string {
	if len(e.UploadDate) < 4 {
		return ""
	}
	return e.UploadDate[:4]
}
