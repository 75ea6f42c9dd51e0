package audio

import (
	"context"
	"log"

	"github.com/bogem/id3v2"
	ioutils "github.com/trackfetch/trackfetch/internal/io"
	"github.com/trackfetch/trackfetch/internal/model"
)

// CoverFetcher retrieves cover art bytes for a URL.
type CoverFetcher interface {
	DownloadBytes(ctx context.Context, url string) ([]byte, error)
}

// Tagger writes resolved track metadata into an MP3 file's ID3 tags.
//
// All text tags are written unconditionally once metadata resolution
// succeeded; empty values clear stale frames left by the extractor.
// Cover art is best-effort: retrieval or conversion failures are
// logged and the file is tagged without art.
//
//	tagger := audio.NewTagger(httpClient, 1000)
//	err := tagger.Tag(ctx, entry.LocalPath, meta)
type Tagger struct {
	covers       CoverFetcher
	images       *ioutils.ImageService
	coverMaxSize int
}

// NewTagger creates a Tagger. coverMaxSize bounds the embedded cover's
// edge length in pixels; <= 0 embeds covers unscaled.
func NewTagger(covers CoverFetcher, coverMaxSize int) *Tagger {
	return &Tagger{
		covers:       covers,
		images:       ioutils.NewImageService(),
		coverMaxSize: coverMaxSize,
	}
}

// Tag writes meta into the file at path.
func (t *Tagger) Tag(ctx context.Context, path string, meta model.TrackMetadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetTitle(meta.Title)
	tag.SetArtist(meta.Artist)
	tag.SetAlbum(meta.Album)
	tag.SetGenre(meta.Genre)
	tag.AddTextFrame("TYER", id3v2.EncodingUTF8, meta.Year)

	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding: id3v2.EncodingUTF8,
		Language: "eng",
		Text:     meta.Description,
	})
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    id3v2.EncodingUTF8,
		Language:    "eng",
		Description: "Source",
		Text:        meta.SourcePageURL,
	})

	if meta.CoverArtURL != "" {
		if artwork := t.fetchCover(ctx, meta.CoverArtURL); artwork != nil {
			tag.DeleteFrames(tag.CommonID("Attached picture"))
			tag.AddAttachedPicture(id3v2.PictureFrame{
				Encoding:    id3v2.EncodingUTF8,
				MimeType:    "image/jpeg",
				PictureType: id3v2.PTFrontCover,
				Description: "Cover",
				Picture:     artwork,
			})
		}
	}

	return tag.Save()
}

// fetchCover downloads and prepares cover art, returning nil when it
// cannot. Cover failures never fail tagging.
func (t *Tagger) fetchCover(ctx context.Context, url string) []byte {
	data, err := t.covers.DownloadBytes(ctx, url)
	if err != nil {
		log.Printf("cover art download failed, tagging without art: %v", err)
		return nil
	}

	artwork, err := t.images.PrepareCover(data, t.coverMaxSize)
	if err != nil {
		log.Printf("cover art conversion failed, tagging without art: %v", err)
		return nil
	}
	return artwork
}
