package job_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackfetch/trackfetch/internal/fetch"
	"github.com/trackfetch/trackfetch/internal/job"
	"github.com/trackfetch/trackfetch/internal/model"
	"github.com/trackfetch/trackfetch/internal/recognize"
)

type fakeFetcher struct {
	mu       sync.Mutex
	urls     []string
	playlist []bool

	block   chan struct{}
	results map[string]*fetch.Result
	errs    map[string]error
	steps   [][2]int64
}

func (f *fakeFetcher) Extract(ctx context.Context, url string, playlist bool, onProgress fetch.ProgressFunc) (*fetch.Result, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.playlist = append(f.playlist, playlist)
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	for _, step := range f.steps {
		onProgress(step[0], step[1])
	}
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	if res, ok := f.results[url]; ok {
		return res, nil
	}
	return &fetch.Result{}, nil
}

type fakeIdentifier struct {
	track *recognize.Track
	errs  map[string]error
}

func (f *fakeIdentifier) Identify(ctx context.Context, audioPath string) (*recognize.Track, error) {
	if err := f.errs[filepath.Base(audioPath)]; err != nil {
		return nil, err
	}
	if f.track != nil {
		return f.track, nil
	}
	return &recognize.Track{Title: "Song", Subtitle: "Artist"}, nil
}

type fakeTagger struct {
	mu    sync.Mutex
	paths []string
	metas []model.TrackMetadata
	err   error
}

func (f *fakeTagger) Tag(ctx context.Context, path string, meta model.TrackMetadata) error {
	f.mu.Lock()
	f.paths = append(f.paths, path)
	f.metas = append(f.metas, meta)
	f.mu.Unlock()
	return f.err
}

type fakeTranscoder struct {
	mu   sync.Mutex
	dsts []string
	err  error
}

func (f *fakeTranscoder) Transcode(ctx context.Context, src, dst string) error {
	f.mu.Lock()
	f.dsts = append(f.dsts, dst)
	f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dst, []byte("converted"), 0o644)
}

// drain runs the scheduler to completion and returns every event,
// grouped by job.
func drain(s *job.Scheduler) map[string][]job.Event {
	go s.Wait()

	byJob := make(map[string][]job.Event)
	for ev := range s.Events() {
		byJob[ev.EventJobID()] = append(byJob[ev.EventJobID()], ev)
	}
	return byJob
}

// requireCleanStream asserts the per-job event invariants: progress
// never regresses, reaches exactly 100, and the stream ends with a
// single outcome.
func requireCleanStream(t *testing.T, events []job.Event) job.OutcomeEvent {
	t.Helper()
	require.NotEmpty(t, events)

	last := 0
	for _, ev := range events[:len(events)-1] {
		p, ok := ev.(job.ProgressEvent)
		require.True(t, ok, "only the final event may be an outcome, got %#v", ev)
		require.Greater(t, p.Percent, last, "progress must move forward")
		require.LessOrEqual(t, p.Percent, 100)
		last = p.Percent
	}
	require.Equal(t, 100, last, "progress must end at 100")

	outcome, ok := events[len(events)-1].(job.OutcomeEvent)
	require.True(t, ok, "stream must end with an outcome")
	return outcome
}

func entryFile(t *testing.T, dir, id string) model.FetchEntry {
	t.Helper()
	path := filepath.Join(dir, id+".mp3")
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	return model.FetchEntry{
		ID:         id,
		LocalPath:  path,
		Uploader:   "Channel",
		RawTitle:   "Channel - Song [Official Video]",
		UploadDate: "20200114",
		WebpageURL: "https://example.com/watch?v=" + id,
	}
}

func TestSubmitRejectsNonURLInput(t *testing.T) {
	s := job.NewScheduler(&fakeFetcher{}, &fakeIdentifier{}, &fakeTagger{}, &fakeTranscoder{}, job.Options{})

	for _, input := range []string{"", "   ", "not a url", "missingtld"} {
		_, err := s.Submit(input, model.FormatMP3, false)
		assert.ErrorIs(t, err, job.ErrInvalidURL, "input %q", input)
	}

	drain(s)
}

func TestSingleJobSuccess(t *testing.T) {
	dir := t.TempDir()
	url := "https://example.com/watch?v=abc123"

	fetcher := &fakeFetcher{
		steps: [][2]int64{{250, 1000}, {500, 1000}, {1000, 1000}},
		results: map[string]*fetch.Result{
			url: {Entries: []model.FetchEntry{entryFile(t, dir, "abc123")}},
		},
	}
	tagger := &fakeTagger{}
	s := job.NewScheduler(fetcher, &fakeIdentifier{}, tagger, &fakeTranscoder{}, job.Options{})

	id, err := s.Submit(url, model.FormatMP3, false)
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	events := drain(s)
	outcome := requireCleanStream(t, events[id])

	require.True(t, outcome.Success, "unexpected failure: %s", outcome.ErrorMessage)
	assert.Equal(t, "Artist - Song", outcome.Filename)

	require.Len(t, tagger.metas, 1)
	assert.Equal(t, "Song", tagger.metas[0].Title)
	assert.Equal(t, "Artist", tagger.metas[0].Artist)
	assert.Equal(t, "2020", tagger.metas[0].Year)

	_, statErr := os.Stat(filepath.Join(dir, "Artist - Song.mp3"))
	assert.NoError(t, statErr, "renamed output must exist")
}

func TestPlaylistReferenceStrippedWhenNotAllowed(t *testing.T) {
	fetcher := &fakeFetcher{
		errs: map[string]error{"https://example.com/watch?v=abc": errors.New("boom")},
	}
	s := job.NewScheduler(fetcher, &fakeIdentifier{}, &fakeTagger{}, &fakeTranscoder{}, job.Options{})

	_, err := s.Submit("https://example.com/watch?v=abc&list=PL123", model.FormatMP3, false)
	require.NoError(t, err)
	drain(s)

	require.Len(t, fetcher.urls, 1)
	assert.Equal(t, "https://example.com/watch?v=abc", fetcher.urls[0])
	assert.False(t, fetcher.playlist[0])
}

func TestPlaylistReferenceKeptWhenAllowed(t *testing.T) {
	url := "https://example.com/watch?v=abc&list=PL123"
	dir := t.TempDir()
	fetcher := &fakeFetcher{
		results: map[string]*fetch.Result{
			url: {Entries: []model.FetchEntry{entryFile(t, dir, "abc")}, PlaylistTitle: "Mix"},
		},
	}
	s := job.NewScheduler(fetcher, &fakeIdentifier{}, &fakeTagger{}, &fakeTranscoder{}, job.Options{})

	_, err := s.Submit(url, model.FormatMP3, true)
	require.NoError(t, err)
	drain(s)

	require.Len(t, fetcher.urls, 1)
	assert.Equal(t, url, fetcher.urls[0])
	assert.True(t, fetcher.playlist[0])
}

func TestConcurrentJobsStayIsolated(t *testing.T) {
	dir := t.TempDir()
	okURL := "https://example.com/watch?v=good1"
	fetchFailURL := "https://example.com/watch?v=bad1"
	recogFailURL := "https://example.com/watch?v=bad2"

	fetcher := &fakeFetcher{
		results: map[string]*fetch.Result{
			okURL:        {Entries: []model.FetchEntry{entryFile(t, dir, "good1")}},
			recogFailURL: {Entries: []model.FetchEntry{entryFile(t, dir, "bad2")}},
		},
		errs: map[string]error{fetchFailURL: errors.New("network unreachable")},
	}
	identifier := &fakeIdentifier{
		errs: map[string]error{"bad2.mp3": recognize.ErrNoMatch},
	}
	s := job.NewScheduler(fetcher, identifier, &fakeTagger{}, &fakeTranscoder{}, job.Options{MaxConcurrentJobs: 2})

	ids := make(map[string]string)
	for name, url := range map[string]string{"ok": okURL, "fetch": fetchFailURL, "recog": recogFailURL} {
		id, err := s.Submit(url, model.FormatMP3, false)
		require.NoError(t, err)
		ids[name] = id
	}

	events := drain(s)

	okOutcome := requireCleanStream(t, events[ids["ok"]])
	assert.True(t, okOutcome.Success)
	assert.Equal(t, "Artist - Song", okOutcome.Filename)

	fetchOutcome := requireCleanStream(t, events[ids["fetch"]])
	assert.False(t, fetchOutcome.Success)
	assert.Equal(t, "Download Error: network unreachable", fetchOutcome.ErrorMessage)

	recogOutcome := requireCleanStream(t, events[ids["recog"]])
	assert.False(t, recogOutcome.Success)
	assert.Equal(t, "Recognition Error: no track recognized", recogOutcome.ErrorMessage)
}

func TestTaggingFailureFailsJob(t *testing.T) {
	dir := t.TempDir()
	url := "https://example.com/watch?v=tag1"
	fetcher := &fakeFetcher{
		results: map[string]*fetch.Result{
			url: {Entries: []model.FetchEntry{entryFile(t, dir, "tag1")}},
		},
	}
	s := job.NewScheduler(fetcher, &fakeIdentifier{}, &fakeTagger{err: errors.New("no id3 header")}, &fakeTranscoder{}, job.Options{})

	id, err := s.Submit(url, model.FormatMP3, false)
	require.NoError(t, err)

	outcome := requireCleanStream(t, drain(s)[id])
	assert.False(t, outcome.Success)
	assert.Equal(t, "Tagging Error: no id3 header", outcome.ErrorMessage)
}

func TestSubmitReturnsWhileCapIsHeld(t *testing.T) {
	fetcher := &fakeFetcher{
		block: make(chan struct{}),
		errs: map[string]error{
			"https://example.com/watch?v=cap1": errors.New("boom"),
			"https://example.com/watch?v=cap2": errors.New("boom"),
		},
	}
	s := job.NewScheduler(fetcher, &fakeIdentifier{}, &fakeTagger{}, &fakeTranscoder{}, job.Options{MaxConcurrentJobs: 1})

	first, err := s.Submit("https://example.com/watch?v=cap1", model.FormatMP3, false)
	require.NoError(t, err)

	// The single slot is now occupied by a fetch that never returns
	// until released; submitting must still come back at once.
	returned := make(chan string)
	go func() {
		id, err := s.Submit("https://example.com/watch?v=cap2", model.FormatMP3, false)
		require.NoError(t, err)
		returned <- id
	}()

	var second string
	select {
	case second = <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked while the concurrency cap was held")
	}

	close(fetcher.block)
	events := drain(s)
	requireCleanStream(t, events[first])
	requireCleanStream(t, events[second])
}

func TestDuplicateSubmissionGetsFreshID(t *testing.T) {
	fetcher := &fakeFetcher{
		block: make(chan struct{}),
		errs:  map[string]error{"https://example.com/watch?v=dup": errors.New("boom")},
	}
	s := job.NewScheduler(fetcher, &fakeIdentifier{}, &fakeTagger{}, &fakeTranscoder{}, job.Options{})

	url := "https://example.com/watch?v=dup"
	first, err := s.Submit(url, model.FormatMP3, false)
	require.NoError(t, err)
	second, err := s.Submit(url, model.FormatMP3, false)
	require.NoError(t, err)

	assert.Equal(t, "dup", first)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second, "dup-"))

	close(fetcher.block)
	events := drain(s)
	requireCleanStream(t, events[first])
	requireCleanStream(t, events[second])
}
