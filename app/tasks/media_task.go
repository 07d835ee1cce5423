package tasks

import (
	"context"
	"log/slog"

	"github.com/lysyi3m/tube-comb/app/playback"
)

// MediaRunner invokes the external download and playback tools.
type MediaRunner interface {
	Download(ctx context.Context, url string, mode playback.Mode) error
	Play(ctx context.Context, url string) error
}

type DownloadTask struct {
	Task
	url    string
	mode   playback.Mode
	runner MediaRunner
}

func NewDownloadTask(videoID, url string, mode playback.Mode, runner MediaRunner) *DownloadTask {
	return &DownloadTask{
		Task:   NewTask(TaskTypeDownload, videoID),
		url:    url,
		mode:   mode,
		runner: runner,
	}
}

func (t *DownloadTask) Execute(ctx context.Context) Update {
	if err := t.runner.Download(ctx, t.url, t.mode); err != nil {
		slog.Error("Download failed", "item", t.ItemID, "error", err)
		return Update{ItemID: t.ItemID, Tag: StatusDownloadFailed}
	}
	return Update{ItemID: t.ItemID, Tag: StatusDownloaded}
}

type PlayTask struct {
	Task
	url    string
	runner MediaRunner
}

func NewPlayTask(videoID, url string, runner MediaRunner) *PlayTask {
	return &PlayTask{
		Task:   NewTask(TaskTypePlay, videoID),
		url:    url,
		runner: runner,
	}
}

func (t *PlayTask) Execute(ctx context.Context) Update {
	if err := t.runner.Play(ctx, t.url); err != nil {
		slog.Error("Playback failed", "item", t.ItemID, "error", err)
		return Update{ItemID: t.ItemID, Tag: StatusPlaybackFailed}
	}
	return Update{ItemID: t.ItemID, Tag: StatusPlaybackDone}
}
