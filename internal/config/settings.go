package config

import (
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Settings holds all configuration options.
type Settings struct {
	// OutputRoot is the directory all job outputs land under.
	// Non-playlist jobs write directly under it, playlist jobs in a
	// per-playlist subdirectory.
	OutputRoot string `mapstructure:"OUTPUT_ROOT"`

	// YtdlpBin is the fetcher binary to invoke.
	YtdlpBin string `mapstructure:"YTDLP_BIN"`

	// FFmpegBin is the transcoder binary to invoke.
	FFmpegBin string `mapstructure:"FFMPEG_BIN"`

	// RecognizerURL is the endpoint of the track recognition service.
	RecognizerURL string `mapstructure:"RECOGNIZER_URL"`

	// RecognizerTimeout bounds a single recognition call.
	RecognizerTimeout time.Duration `mapstructure:"RECOGNIZER_TIMEOUT"`

	// HTTPTimeout bounds cover-art retrieval.
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`

	// MaxConcurrentJobs caps how many jobs run at once.
	// Zero or negative means no cap.
	MaxConcurrentJobs int `mapstructure:"MAX_CONCURRENT_JOBS"`

	// SampleBitrate is the bitrate of the transient recognition sample,
	// in ffmpeg "-ab" notation.
	SampleBitrate string `mapstructure:"SAMPLE_BITRATE"`

	// CoverArtMaxSize is the max edge length, in pixels, of embedded
	// cover art. Larger images are scaled down.
	CoverArtMaxSize int `mapstructure:"COVER_ART_MAX_SIZE"`

	// WritePlaylist enables writing an .m3u file for playlist jobs.
	WritePlaylist bool `mapstructure:"WRITE_PLAYLIST"`

	// Verbose enables per-stage diagnostics in the front ends.
	Verbose bool `mapstructure:"VERBOSE"`
}

// stringToDurationHookFunc parses Go duration strings in config values.
func stringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return time.ParseDuration(data.(string))
	}
}

// Load reads settings from the config file and environment.
//
// Lookup order: defaults, then a trackfetch_config.yaml found in the
// working directory or /etc/trackfetch/, then TRACKFETCH_* environment
// variables. A missing config file is not an error.
func Load() (*Settings, error) {
	vp := viper.New()

	vp.SetDefault("OUTPUT_ROOT", "./trackfetch_download")
	vp.SetDefault("YTDLP_BIN", "yt-dlp")
	vp.SetDefault("FFMPEG_BIN", "ffmpeg")
	vp.SetDefault("RECOGNIZER_URL", "http://localhost:7090/v1/recognize")
	vp.SetDefault("RECOGNIZER_TIMEOUT", "45s")
	vp.SetDefault("HTTP_TIMEOUT", "60s")
	vp.SetDefault("MAX_CONCURRENT_JOBS", 0)
	vp.SetDefault("SAMPLE_BITRATE", "128k")
	vp.SetDefault("COVER_ART_MAX_SIZE", 1000)
	vp.SetDefault("WRITE_PLAYLIST", false)
	vp.SetDefault("VERBOSE", false)

	vp.SetConfigName("trackfetch_config")
	vp.SetConfigType("yaml")
	vp.AddConfigPath(".")
	vp.AddConfigPath("/etc/trackfetch/")

	if err := vp.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	vp.SetEnvPrefix("TRACKFETCH")
	vp.AutomaticEnv()

	var s Settings
	err := vp.Unmarshal(&s, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			stringToDurationHookFunc(),
		),
	))
	if err != nil {
		return nil, err
	}

	return &s, nil
}
