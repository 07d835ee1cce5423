package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lysyi3m/tube-comb/app/playback"
	"github.com/lysyi3m/tube-comb/app/youtube"
)

type fakeSubscriptionStore struct {
	subscribeCreated bool
	subscribeErr     error
	unsubRemoved     bool
	unsubErr         error
}

func (f *fakeSubscriptionStore) Subscribe(channelID, channelUsername string) (bool, error) {
	return f.subscribeCreated, f.subscribeErr
}

func (f *fakeSubscriptionStore) Unsubscribe(channelID string) (bool, error) {
	return f.unsubRemoved, f.unsubErr
}

type fakeMediaRunner struct {
	downloadErr error
	playErr     error
	lastURL     string
	lastMode    playback.Mode
}

func (f *fakeMediaRunner) Download(_ context.Context, url string, mode playback.Mode) error {
	f.lastURL = url
	f.lastMode = mode
	return f.downloadErr
}

func (f *fakeMediaRunner) Play(_ context.Context, url string) error {
	f.lastURL = url
	return f.playErr
}

// waitForStatus polls the board until the item carries a tag or the deadline
// passes.
func waitForStatus(t *testing.T, board *StatusBoard, itemID string) string {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if tag, ok := board.Get(itemID); ok {
			return tag
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for status of %s", itemID)
	return ""
}

func TestDispatcherDeliversUpdates(t *testing.T) {
	board := NewStatusBoard()
	dispatcher := NewDispatcher(board, 2)
	dispatcher.Start()
	defer dispatcher.Stop()

	store := &fakeSubscriptionStore{subscribeCreated: true}
	task := NewSubscribeTask(youtube.NewChannel("@alpha", "Alpha"), store)

	if err := dispatcher.Enqueue(task); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	tag := waitForStatus(t, board, "@alpha")
	if tag != StatusSubscribed {
		t.Errorf("Expected tag %q, got: %q", StatusSubscribed, tag)
	}
}

func TestDispatcherEnqueueAfterStop(t *testing.T) {
	dispatcher := NewDispatcher(NewStatusBoard(), 1)
	dispatcher.Start()
	dispatcher.Stop()

	store := &fakeSubscriptionStore{}
	err := dispatcher.Enqueue(NewSubscribeTask(youtube.NewChannel("@alpha", "Alpha"), store))
	if err == nil {
		t.Error("Expected an error enqueueing after stop")
	}
}

func TestSubscribeTaskStatuses(t *testing.T) {
	channel := youtube.NewChannel("@alpha", "Alpha")

	tests := []struct {
		name     string
		store    *fakeSubscriptionStore
		expected string
	}{
		{"created", &fakeSubscriptionStore{subscribeCreated: true}, StatusSubscribed},
		{"duplicate", &fakeSubscriptionStore{subscribeCreated: false}, StatusAlreadySubscribed},
		{"failure", &fakeSubscriptionStore{subscribeErr: errors.New("db closed")}, StatusSubscribeFailed},
	}

	for _, tt := range tests {
		update := NewSubscribeTask(channel, tt.store).Execute(context.Background())
		if update.Tag != tt.expected {
			t.Errorf("%s: expected tag %q, got: %q", tt.name, tt.expected, update.Tag)
		}
		if update.ItemID != "@alpha" {
			t.Errorf("%s: expected item '@alpha', got: %q", tt.name, update.ItemID)
		}
	}
}

func TestUnsubscribeTaskStatuses(t *testing.T) {
	tests := []struct {
		name     string
		store    *fakeSubscriptionStore
		expected string
	}{
		{"removed", &fakeSubscriptionStore{unsubRemoved: true}, StatusUnsubscribed},
		{"missing", &fakeSubscriptionStore{unsubRemoved: false}, StatusNotSubscribed},
		{"failure", &fakeSubscriptionStore{unsubErr: errors.New("db closed")}, StatusUnsubscribeFailed},
	}

	for _, tt := range tests {
		update := NewUnsubscribeTask("@alpha", tt.store).Execute(context.Background())
		if update.Tag != tt.expected {
			t.Errorf("%s: expected tag %q, got: %q", tt.name, tt.expected, update.Tag)
		}
	}
}

func TestDownloadTask(t *testing.T) {
	runner := &fakeMediaRunner{}
	task := NewDownloadTask("vid-1", "https://www.youtube.com/watch?v=vid-1", playback.ModeAudio, runner)

	update := task.Execute(context.Background())
	if update.Tag != StatusDownloaded {
		t.Errorf("Expected tag %q, got: %q", StatusDownloaded, update.Tag)
	}
	if runner.lastMode != playback.ModeAudio {
		t.Errorf("Expected audio mode, got: %v", runner.lastMode)
	}
	if runner.lastURL != "https://www.youtube.com/watch?v=vid-1" {
		t.Errorf("Expected watch URL, got: %s", runner.lastURL)
	}
}

func TestDownloadTaskFailure(t *testing.T) {
	runner := &fakeMediaRunner{downloadErr: errors.New("yt-dlp exited 1")}
	update := NewDownloadTask("vid-1", "u", playback.ModeVideo, runner).Execute(context.Background())
	if update.Tag != StatusDownloadFailed {
		t.Errorf("Expected tag %q, got: %q", StatusDownloadFailed, update.Tag)
	}
}

func TestPlayTask(t *testing.T) {
	runner := &fakeMediaRunner{}
	update := NewPlayTask("vid-1", "https://www.youtube.com/watch?v=vid-1", runner).Execute(context.Background())
	if update.Tag != StatusPlaybackDone {
		t.Errorf("Expected tag %q, got: %q", StatusPlaybackDone, update.Tag)
	}

	runner.playErr = errors.New("mpv exited 1")
	update = NewPlayTask("vid-1", "u", runner).Execute(context.Background())
	if update.Tag != StatusPlaybackFailed {
		t.Errorf("Expected tag %q, got: %q", StatusPlaybackFailed, update.Tag)
	}
}

func TestStatusBoard(t *testing.T) {
	board := NewStatusBoard()

	if _, ok := board.Get("missing"); ok {
		t.Error("Expected no tag for an unknown item")
	}

	board.Set("vid-1", StatusDownloaded)
	tag, ok := board.Get("vid-1")
	if !ok || tag != StatusDownloaded {
		t.Errorf("Expected tag %q, got: %q (ok=%v)", StatusDownloaded, tag, ok)
	}

	board.Set("vid-1", StatusPlaybackDone)
	tag, _ = board.Get("vid-1")
	if tag != StatusPlaybackDone {
		t.Errorf("Expected overwritten tag %q, got: %q", StatusPlaybackDone, tag)
	}
}
