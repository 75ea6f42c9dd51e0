package job

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/sync/errgroup"

	"github.com/trackfetch/trackfetch/internal/fetch"
	"github.com/trackfetch/trackfetch/internal/model"
	"github.com/trackfetch/trackfetch/internal/recognize"
)

// urlPattern is the shallow plausibility check applied on submission.
// Anything that passes is handed to the extractor, which performs the
// real validation.
var urlPattern = regexp.MustCompile(`^(https?://)?([\w.-]+)\.([a-zA-Z]{2,})(:[0-9]+)?(/\S*)?$`)

// Identifier recognizes the track stored in a local audio file.
type Identifier interface {
	Identify(ctx context.Context, audioPath string) (*recognize.Track, error)
}

// TagWriter embeds track metadata into a local audio file.
type TagWriter interface {
	Tag(ctx context.Context, path string, meta model.TrackMetadata) error
}

// Transcoder converts a local audio file into another container,
// leaving the source file in place.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string) error
}

// Options configures a Scheduler.
type Options struct {
	// MaxConcurrentJobs caps how many jobs run at once.
	// Zero or negative means no cap.
	MaxConcurrentJobs int

	// WritePlaylist enables writing an .m3u file next to the outputs of
	// a playlist job.
	WritePlaylist bool
}

// Scheduler accepts media URLs and runs each through the full
// fetch/recognize/tag/convert/name pipeline in its own goroutine.
//
// Jobs are isolated from each other: a failing job never affects its
// siblings, and every accepted job emits exactly one OutcomeEvent.
// Events for all jobs share one stream; the caller must drain Events
// while jobs are running.
type Scheduler struct {
	fetcher    fetch.Fetcher
	identifier Identifier
	tagger     TagWriter
	transcoder Transcoder
	opts       Options

	group  *errgroup.Group
	wg     sync.WaitGroup
	events chan Event

	mu     sync.Mutex
	active map[string]struct{}
}

// NewScheduler wires a scheduler from its pipeline stages.
func NewScheduler(fetcher fetch.Fetcher, identifier Identifier, tagger TagWriter, transcoder Transcoder, opts Options) *Scheduler {
	group := &errgroup.Group{}
	if opts.MaxConcurrentJobs > 0 {
		group.SetLimit(opts.MaxConcurrentJobs)
	}

	return &Scheduler{
		fetcher:    fetcher,
		identifier: identifier,
		tagger:     tagger,
		transcoder: transcoder,
		opts:       opts,
		group:      group,
		events:     make(chan Event, 64),
		active:     make(map[string]struct{}),
	}
}

// Events returns the shared event stream. Progress and outcome events
// for all jobs arrive here; the stream is closed by Wait.
func (s *Scheduler) Events() <-chan Event {
	return s.events
}

// Submit validates the URL, assigns a job identifier and starts the
// job's pipeline. It returns the identifier immediately, even while
// the concurrency cap is saturated: the job then waits for a slot in
// the background. Everything after acceptance is reported through the
// event stream.
//
// The identifier is derived from the URL's video id so resubmitting a
// finished URL reuses the same id. While a job with that id is still
// running, a fresh submission gets a suffixed id instead so the two
// event streams stay distinguishable.
func (s *Scheduler) Submit(url string, format model.Format, playlistAllowed bool) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" || !urlPattern.MatchString(url) {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}

	id := model.VideoID(url)

	s.mu.Lock()
	if _, running := s.active[id]; running {
		id += "-" + shortuuid.New()
	}
	s.active[id] = struct{}{}
	s.mu.Unlock()

	j := &model.Job{
		ID:              id,
		SourceURL:       url,
		PlaylistAllowed: playlistAllowed,
		TargetFormat:    format,
		State:           model.StateQueued,
	}

	// group.Go blocks while the cap is held, so it runs on a detached
	// goroutine. The wait group covers jobs still parked there.
	s.wg.Add(1)
	go func() {
		s.group.Go(func() error {
			defer s.wg.Done()
			s.run(j)

			s.mu.Lock()
			delete(s.active, j.ID)
			s.mu.Unlock()
			return nil
		})
	}()

	return id, nil
}

// Wait blocks until every submitted job has reached a terminal state,
// then closes the event stream. Call it after the last Submit, from a
// goroutine that is not the one draining Events.
func (s *Scheduler) Wait() {
	s.wg.Wait()
	close(s.events)
}

func (s *Scheduler) emit(ev Event) {
	s.events <- ev
}

// progress records and emits a job's progress. Values never regress
// and never exceed 100; stale or duplicate reports are dropped.
func (s *Scheduler) progress(j *model.Job, percent int) {
	if percent > 100 {
		percent = 100
	}
	if percent <= j.Progress {
		return
	}
	j.Progress = percent
	s.emit(ProgressEvent{JobID: j.ID, Percent: percent})
}

func (s *Scheduler) finish(j *model.Job, baseName string) {
	j.State = model.StateSucceeded
	j.Result = baseName
	s.progress(j, 100)
	s.emit(OutcomeEvent{JobID: j.ID, Success: true, Filename: baseName})
}

func (s *Scheduler) fail(j *model.Job, err error) {
	j.State = model.StateFailed
	j.Result = err.Error()
	s.progress(j, 100)
	s.emit(OutcomeEvent{JobID: j.ID, Success: false, ErrorMessage: err.Error()})
}
