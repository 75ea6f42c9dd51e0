package audio

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/trackfetch/trackfetch/internal/model"
)

type fakeCovers struct {
	data []byte
	err  error
}

func (f *fakeCovers) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return f.data, f.err
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeAudioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abc123.mp3")
	if err := os.WriteFile(path, []byte("\xff\xfbaudio-frames"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testMetadata() model.TrackMetadata {
	return model.TrackMetadata{
		Title:         "Song",
		Artist:        "Artist",
		Album:         "The Album",
		Year:          "2023",
		Genre:         "Rock",
		Description:   "a description",
		SourcePageURL: "https://x.test/watch?v=abc",
	}
}

func TestTagger_WritesTextFrames(t *testing.T) {
	path := writeAudioFile(t)
	tagger := NewTagger(&fakeCovers{}, 1000)

	if err := tagger.Tag(context.Background(), path, testMetadata()); err != nil {
		t.Fatalf("Tag() error = %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if tag.Title() != "Song" || tag.Artist() != "Artist" || tag.Album() != "The Album" {
		t.Errorf("text frames = %q/%q/%q", tag.Title(), tag.Artist(), tag.Album())
	}
	if tag.Genre() != "Rock" {
		t.Errorf("genre = %q, want Rock", tag.Genre())
	}
	if got := tag.GetTextFrame("TYER").Text; got != "2023" {
		t.Errorf("year frame = %q, want 2023", got)
	}
}

func TestTagger_EmbedsCoverArt(t *testing.T) {
	path := writeAudioFile(t)
	meta := testMetadata()
	meta.CoverArtURL = "https://img.test/cover.png"

	tagger := NewTagger(&fakeCovers{data: pngBytes(t)}, 1000)
	if err := tagger.Tag(context.Background(), path, meta); err != nil {
		t.Fatalf("Tag() error = %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	frames := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(frames) != 1 {
		t.Fatalf("got %d picture frames, want 1", len(frames))
	}
	pic, ok := frames[0].(id3v2.PictureFrame)
	if !ok {
		t.Fatal("frame is not a picture frame")
	}
	if pic.MimeType != "image/jpeg" {
		t.Errorf("cover mime = %q, want image/jpeg", pic.MimeType)
	}
	if len(pic.Picture) == 0 {
		t.Error("cover bytes are empty")
	}
}

func TestTagger_CoverFailureIsNonFatal(t *testing.T) {
	path := writeAudioFile(t)
	meta := testMetadata()
	meta.CoverArtURL = "https://img.test/cover.png"

	tagger := NewTagger(&fakeCovers{err: errors.New("unreachable")}, 1000)
	if err := tagger.Tag(context.Background(), path, meta); err != nil {
		t.Fatalf("Tag() must succeed without cover art, got %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if tag.Title() != "Song" {
		t.Error("text frames must still be written when cover retrieval fails")
	}
	if frames := tag.GetFrames(tag.CommonID("Attached picture")); len(frames) != 0 {
		t.Error("no picture frame expected after cover failure")
	}
}
