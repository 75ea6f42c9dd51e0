package recognize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoMatch is returned when the recognition service answered but
// found no track. The pipeline treats it the same as a service error:
// a job is failed rather than tagged with unverified metadata.
var ErrNoMatch = errors.New("no track recognized")

// SampleEncoder produces the transient low-bitrate rendition the
// recognition service expects.
type SampleEncoder interface {
	EncodeSample(ctx context.Context, src, dst, bitrate string) error
}

// Adapter runs recognition against a raw downloaded audio file.
//
// The recognition service wants a small, plainly-encoded sample, so
// the adapter first encodes one next to the source file, hands it to
// the recognizer and deletes it again. The sample never outlives the
// call, whatever the outcome.
type Adapter struct {
	recognizer Recognizer
	encoder    SampleEncoder
	bitrate    string
}

// NewAdapter creates an Adapter. bitrate is passed through to the
// encoder ("128k" style).
func NewAdapter(recognizer Recognizer, encoder SampleEncoder, bitrate string) *Adapter {
	return &Adapter{recognizer: recognizer, encoder: encoder, bitrate: bitrate}
}

// Identify encodes a sample of audioPath, submits it for recognition
// and returns the recognized track.
//
// Any failure along the way (encoding, service error, no match) is an
// error; there is no silent fallback to unrecognized metadata.
func (a *Adapter) Identify(ctx context.Context, audioPath string) (*Track, error) {
	samplePath := samplePathFor(audioPath)
	defer os.Remove(samplePath)

	if err := a.encoder.EncodeSample(ctx, audioPath, samplePath, a.bitrate); err != nil {
		return nil, fmt.Errorf("encoding recognition sample: %w", err)
	}

	result, err := a.recognizer.Recognize(ctx, samplePath)
	if err != nil {
		return nil, err
	}
	if result == nil || result.Track == nil {
		return nil, ErrNoMatch
	}
	return result.Track, nil
}

// samplePathFor derives the transient sample path from the source
// path, keeping it in the same directory as the job's other artifacts.
func samplePathFor(audioPath string) string {
	base := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	return base + ".sample.mp3"
}
