package cfg

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DATABASE_PATH" default:"tube-comb.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port            string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SourcesFile     string `long:"sources-file" env:"SOURCES_FILE" default:"./subscriptions.yml" description:"Optional YAML file seeding subscriptions at startup"`
	WorkerCount     int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for interactive units"`
	FeedLimit       int    `long:"feed-limit" env:"FEED_LIMIT" default:"10" description:"Default number of cached feed entries returned"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"3600" description:"Interval between feed aggregation passes in seconds"`
	BaseUrl         string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://tube.example.com)"`
	VideoDir        string `long:"video-dir" env:"VIDEO_DIR" description:"Directory video downloads are written to (default: ~/Videos)"`
	AudioDir        string `long:"audio-dir" env:"AUDIO_DIR" description:"Directory audio downloads are written to (default: ~/Music)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0" description:"User agent string for page fetches"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:          raw.DBPath,
		Port:            raw.Port,
		SourcesFile:     raw.SourcesFile,
		WorkerCount:     raw.WorkerCount,
		FeedLimit:       raw.FeedLimit,
		RefreshInterval: raw.RefreshInterval,
		BaseUrl:         raw.BaseUrl,
		VideoDir:        raw.VideoDir,
		AudioDir:        raw.AudioDir,
		UserAgent:       raw.UserAgent,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	applyDownloadDirs(cfg)

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// applyDownloadDirs fills in the platform download directories when not
// configured. yt-dlp is invoked without a shell, so "~" is not expanded for us.
func applyDownloadDirs(cfg *Cfg) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if cfg.VideoDir == "" {
		cfg.VideoDir = filepath.Join(home, "Videos")
	}
	if cfg.AudioDir == "" {
		cfg.AudioDir = filepath.Join(home, "Music")
	}
}
