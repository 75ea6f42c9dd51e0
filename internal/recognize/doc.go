// Package recognize identifies downloaded tracks through an external
// recognition service and resolves the result into canonical tag
// metadata.
//
// # Adapter
//
// The service expects a small, plainly-encoded audio sample, so the
// Adapter encodes a transient MP3 rendition, submits it and removes it
// again regardless of outcome:
//
//	adapter := recognize.NewAdapter(client, ffmpegRunner, "128k")
//	track, err := adapter.Identify(ctx, entry.LocalPath)
//
// A service error or a no-match response is an error: the pipeline
// fails the job instead of tagging with unverified metadata.
//
// # Resolution
//
// Resolve merges the recognized track with the fetch entry under a
// fixed precedence policy (recognized values win, entry values fill
// gaps), including the idempotent title-cleaning transform used for
// fallbacks.
package recognize
