package playback

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lysyi3m/tube-comb/app/youtube"
)

var execCommand = exec.CommandContext

// Mode selects which track is downloaded from a content URL.
type Mode int

const (
	ModeVideo Mode = iota
	ModeAudio
)

// Download formats passed to yt-dlp per mode. 233 is the audio-only rendition.
const (
	videoFormat = "best[ext=mp4]/best"
	audioFormat = "233"
)

// Runner invokes the external playback and download tools (yt-dlp and mpv).
// The core treats both as opaque operations.
type Runner struct {
	videoDir string
	audioDir string
}

func NewRunner(videoDir, audioDir string) *Runner {
	return &Runner{videoDir: videoDir, audioDir: audioDir}
}

// Play resolves a direct stream URL with yt-dlp and hands it to mpv. It
// blocks until playback ends.
func (r *Runner) Play(ctx context.Context, url string) error {
	out, err := execCommand(ctx, "yt-dlp", "-f", videoFormat, "-g", youtube.NormalizeURL(url)).Output()
	if err != nil {
		return fmt.Errorf("yt-dlp failed to resolve stream: %w", err)
	}

	streamURL := strings.TrimSpace(string(out))
	if streamURL == "" {
		return fmt.Errorf("yt-dlp resolved no stream for %s", url)
	}

	if err := execCommand(ctx, "mpv", "--really-quiet", streamURL).Run(); err != nil {
		return fmt.Errorf("mpv failed: %w", err)
	}
	return nil
}

// Download fetches the content at url with yt-dlp in the given mode.
func (r *Runner) Download(ctx context.Context, url string, mode Mode) error {
	dir, format := r.videoDir, videoFormat
	if mode == ModeAudio {
		dir, format = r.audioDir, audioFormat
	}

	cmd := execCommand(ctx, "yt-dlp", "-P", dir, "-f", format, youtube.NormalizeURL(url))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("yt-dlp download failed: %w (output: %s)", err, out)
	}
	return nil
}
