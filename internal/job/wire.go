package job

import (
	"github.com/trackfetch/trackfetch/internal/audio"
	"github.com/trackfetch/trackfetch/internal/config"
	"github.com/trackfetch/trackfetch/internal/fetch"
	"github.com/trackfetch/trackfetch/internal/ffmpeg"
	"github.com/trackfetch/trackfetch/internal/http"
	"github.com/trackfetch/trackfetch/internal/recognize"
)

// FromSettings assembles a fully wired scheduler: yt-dlp fetcher,
// ffmpeg transcoder, recognition adapter and ID3 tagger, all
// configured from settings. It fails fast when one of the external
// binaries cannot be found.
func FromSettings(settings *config.Settings) (*Scheduler, error) {
	fetcher, err := fetch.NewYtdlpFetcher(settings.YtdlpBin, settings.OutputRoot)
	if err != nil {
		return nil, err
	}

	runner, err := ffmpeg.NewRunner(settings.FFmpegBin)
	if err != nil {
		return nil, err
	}

	recognizer := recognize.NewClient(settings.RecognizerURL, settings.RecognizerTimeout)
	identifier := recognize.NewAdapter(recognizer, runner, settings.SampleBitrate)

	httpClient := http.NewClient(settings.HTTPTimeout)
	tagger := audio.NewTagger(httpClient, settings.CoverArtMaxSize)

	return NewScheduler(fetcher, identifier, tagger, runner, Options{
		MaxConcurrentJobs: settings.MaxConcurrentJobs,
		WritePlaylist:     settings.WritePlaylist,
	}), nil
}
