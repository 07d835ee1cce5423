package playback

import (
	"context"
	"os/exec"
	"testing"
)

// stubCommands replaces the external tool invocations with echo, recording
// every argument list, and restores the real binding on cleanup.
func stubCommands(t *testing.T) *[][]string {
	t.Helper()

	var calls [][]string
	original := execCommand
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		calls = append(calls, append([]string{name}, args...))
		echoArgs := append([]string{"stub-output"}, args...)
		return exec.CommandContext(ctx, "echo", echoArgs...)
	}
	t.Cleanup(func() { execCommand = original })

	return &calls
}

func TestPlay(t *testing.T) {
	calls := stubCommands(t)
	runner := NewRunner("/videos", "/music")

	if err := runner.Play(context.Background(), "/watch?v=vid-1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(*calls) != 2 {
		t.Fatalf("Expected 2 tool invocations, got: %d", len(*calls))
	}

	resolve := (*calls)[0]
	if resolve[0] != "yt-dlp" {
		t.Errorf("Expected yt-dlp first, got: %s", resolve[0])
	}
	expected := []string{"yt-dlp", "-f", "best[ext=mp4]/best", "-g", "https://www.youtube.com/watch?v=vid-1"}
	assertArgs(t, resolve, expected)

	play := (*calls)[1]
	if play[0] != "mpv" {
		t.Errorf("Expected mpv second, got: %s", play[0])
	}
	if play[1] != "--really-quiet" {
		t.Errorf("Expected --really-quiet flag, got: %s", play[1])
	}
}

func TestDownloadVideo(t *testing.T) {
	calls := stubCommands(t)
	runner := NewRunner("/videos", "/music")

	if err := runner.Download(context.Background(), "https://www.youtube.com/watch?v=vid-1", ModeVideo); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(*calls) != 1 {
		t.Fatalf("Expected 1 tool invocation, got: %d", len(*calls))
	}
	expected := []string{"yt-dlp", "-P", "/videos", "-f", "best[ext=mp4]/best", "https://www.youtube.com/watch?v=vid-1"}
	assertArgs(t, (*calls)[0], expected)
}

func TestDownloadAudio(t *testing.T) {
	calls := stubCommands(t)
	runner := NewRunner("/videos", "/music")

	if err := runner.Download(context.Background(), "https://www.youtube.com/watch?v=vid-1", ModeAudio); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := []string{"yt-dlp", "-P", "/music", "-f", "233", "https://www.youtube.com/watch?v=vid-1"}
	assertArgs(t, (*calls)[0], expected)
}

func TestDownloadFailure(t *testing.T) {
	original := execCommand
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}
	t.Cleanup(func() { execCommand = original })

	runner := NewRunner("/videos", "/music")
	if err := runner.Download(context.Background(), "u", ModeVideo); err == nil {
		t.Error("Expected an error when the tool exits nonzero")
	}
}

func assertArgs(t *testing.T, got, expected []string) {
	t.Helper()

	if len(got) != len(expected) {
		t.Fatalf("Expected args %v, got: %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected arg %d to be %q, got: %q", i, expected[i], got[i])
		}
	}
}
