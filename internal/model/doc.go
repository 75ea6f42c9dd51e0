// Package model defines the core data structures shared across the
// trackfetch pipeline.
//
// # Job
//
// Job tracks one submission through its lifecycle:
//
//	job := &model.Job{ID: model.VideoID(url), SourceURL: url, State: model.StateQueued}
//
// A job is mutated only by the goroutine executing its pipeline and
// becomes immutable once its state is terminal.
//
// # FetchEntry and TrackMetadata
//
// FetchEntry is what the fetcher reports for one retrieved media item.
// TrackMetadata is the resolved, canonical set of tag values produced by
// merging a FetchEntry with a recognition result.
//
// # Format
//
// Format enumerates the supported output containers:
//
//	f, err := model.ParseFormat("flac")
//	f.Extension() // ".flac"
package model
