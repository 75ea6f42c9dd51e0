package job

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/trackfetch/trackfetch/internal/audio"
	ioutils "github.com/trackfetch/trackfetch/internal/io"
	"github.com/trackfetch/trackfetch/internal/model"
	"github.com/trackfetch/trackfetch/internal/recognize"
)

// Progress milestones. The byte-level download progress is scaled into
// the band between fetchStarted and fetchDone; the per-entry stages
// take the narrow band above it.
const (
	pctValidated    = 5
	pctFetchStarted = 10
	pctFetchDone    = 90
	pctRecognizing  = 92
	pctRecognized   = 96
)

// run drives one job from queued to terminal. It is the only goroutine
// that touches the job after Submit returns.
func (s *Scheduler) run(j *model.Job) {
	ctx := context.Background()

	url := j.SourceURL
	if !j.PlaylistAllowed {
		url = model.StripPlaylist(url)
	}
	s.progress(j, pctValidated)

	j.State = model.StateFetching
	s.progress(j, pctFetchStarted)

	playlist := j.PlaylistAllowed && strings.Contains(url, "&list=")
	result, err := s.fetcher.Extract(ctx, url, playlist, func(downloaded, total int64) {
		if total <= 0 {
			return
		}
		pct := pctFetchStarted + int(downloaded*(pctFetchDone-pctFetchStarted)/total)
		if pct > pctFetchDone {
			pct = pctFetchDone
		}
		s.progress(j, pct)
	})
	if err != nil {
		s.fail(j, &StageError{Stage: StageFetch, Err: err})
		return
	}

	var lastBase string
	tracks := make([]audio.PlaylistTrack, 0, len(result.Entries))
	for _, entry := range result.Entries {
		base, track, err := s.processEntry(ctx, j, entry)
		if err != nil {
			s.fail(j, err)
			return
		}
		lastBase = base
		tracks = append(tracks, track)
	}

	if playlist && s.opts.WritePlaylist && len(tracks) > 0 {
		s.writePlaylist(result.PlaylistTitle, tracks)
	}

	s.finish(j, lastBase)
}

// processEntry identifies, tags, converts and names one fetched audio
// file. It returns the final base name and a playlist entry for the
// output. Any error is already stage-wrapped.
func (s *Scheduler) processEntry(ctx context.Context, j *model.Job, entry model.FetchEntry) (string, audio.PlaylistTrack, error) {
	s.progress(j, pctFetchDone)

	j.State = model.StateRecognizing
	s.progress(j, pctRecognizing)
	track, err := s.identifier.Identify(ctx, entry.LocalPath)
	if err != nil {
		return "", audio.PlaylistTrack{}, &StageError{Stage: StageRecognition, Err: err}
	}
	s.progress(j, pctRecognized)

	meta := recognize.Resolve(entry, track)

	j.State = model.StateTagging
	if err := s.tagger.Tag(ctx, entry.LocalPath, meta); err != nil {
		return "", audio.PlaylistTrack{}, &StageError{Stage: StageTagging, Err: err}
	}

	path := entry.LocalPath
	if !j.TargetFormat.IsNative() {
		j.State = model.StateConverting
		dst := strings.TrimSuffix(path, filepath.Ext(path)) + j.TargetFormat.Extension()
		if err := s.transcoder.Transcode(ctx, path, dst); err != nil {
			return "", audio.PlaylistTrack{}, &StageError{Stage: StageConvert, Err: err}
		}
		if err := os.Remove(path); err != nil {
			log.Printf("keeping source after conversion, remove failed: %v", err)
		}
		path = dst
	}

	// A failed rename downgrades to a warning: the file exists and is
	// fully tagged, it just keeps its extractor-assigned name.
	renamed, err := audio.Rename(path, meta.Artist, meta.Title)
	if err != nil {
		log.Printf("rename failed for %s: %v", path, err)
		renamed = path
	}

	pt := audio.PlaylistTrack{Path: renamed, Artist: meta.Artist, Title: meta.Title}
	return audio.BaseName(renamed), pt, nil
}

// writePlaylist drops an .m3u next to a playlist job's outputs.
// Failures are logged, never fatal.
func (s *Scheduler) writePlaylist(title string, tracks []audio.PlaylistTrack) {
	if title == "" {
		title = "playlist"
	}
	dir := filepath.Dir(tracks[0].Path)
	path := filepath.Join(dir, ioutils.SanitizeFileName(title)+".m3u")
	if err := audio.WritePlaylist(path, tracks, true); err != nil {
		log.Printf("playlist write failed for %s: %v", path, err)
	}
}
