// Package ffmpeg wraps the external ffmpeg binary for the two
// transcodes the pipeline needs: alternate-format output copies and
// the transient low-bitrate sample handed to the recognizer.
//
//	runner, err := ffmpeg.NewRunner("ffmpeg")
//	err = runner.Transcode(ctx, "song.mp3", "song.flac")
//	err = runner.EncodeSample(ctx, "song.mp3", "song.sample.mp3", "128k")
//
// Transcode removes a partial destination file when the run fails, so
// no half-written output survives under a final-looking name. Errors
// carry the last line of ffmpeg's stderr.
package ffmpeg
