// Package job provides the orchestration core: it accepts media URLs
// and runs each accepted job through the full pipeline in its own
// goroutine.
//
// # Pipeline
//
// Every job passes through the same stages:
//
//  1. Validate the URL and strip an unwanted playlist reference
//  2. Fetch the audio through the external extractor
//  3. Recognize the track against the recognition service
//  4. Tag the file with the resolved metadata and cover art
//  5. Convert to the requested format (native-format jobs skip this)
//  6. Rename the file to "{artist} - {title}.{ext}"
//
// # Basic Usage
//
//	sched := job.NewScheduler(fetcher, identifier, tagger, transcoder, job.Options{})
//
//	id, err := sched.Submit("https://example.com/watch?v=abc", model.FormatMP3, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	go sched.Wait()
//	for ev := range sched.Events() {
//	    // render ProgressEvent / OutcomeEvent
//	}
//
// # Events
//
// All jobs share one event stream. Per job, progress percentages are
// monotonically non-decreasing, reach exactly 100, and are followed by
// exactly one OutcomeEvent. Failures carry a stage-prefixed message
// ("Download Error", "Recognition Error", "Tagging Error",
// "Convert Error") naming where the pipeline broke.
//
// # Concurrency
//
// Options.MaxConcurrentJobs caps how many jobs run at once; additional
// submissions queue. Jobs never share mutable state, so one job's
// failure cannot disturb another.
package job
