package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes ffmpeg commands.
type Runner struct {
	bin string
}

// NewRunner creates a Runner for the given binary, verifying it can
// be found up front so jobs fail at startup rather than mid-pipeline.
func NewRunner(bin string) (*Runner, error) {
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("ffmpeg binary not found: %s", bin)
	}
	return &Runner{bin: bin}, nil
}

// Transcode converts src into dst, the target codec inferred from
// dst's extension.
//
// On failure the partial dst file is removed and src is left intact,
// so a failed conversion never leaves a corrupt file that could be
// mistaken for final output.
func (r *Runner) Transcode(ctx context.Context, src, dst string) error {
	if err := r.run(ctx, transcodeArgs(src, dst)); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

// EncodeSample produces a small MP3 rendition of src at dst, suitable
// for submission to the recognition service. The caller owns cleanup
// of dst.
func (r *Runner) EncodeSample(ctx context.Context, src, dst, bitrate string) error {
	if err := r.run(ctx, sampleArgs(src, dst, bitrate)); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

func (r *Runner) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, r.bin, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg %s: %w: %s", args[len(args)-1], err, lastLine(output.String()))
	}
	return nil
}

func transcodeArgs(src, dst string) []string {
	return []string{"-y", "-i", src, dst}
}

func sampleArgs(src, dst, bitrate string) []string {
	if bitrate == "" {
		bitrate = "128k"
	}
	return []string{"-y", "-i", src, "-acodec", "mp3", "-ab", bitrate, dst}
}

// lastLine extracts the final non-empty output line, which is where
// ffmpeg puts its actual error message.
func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
