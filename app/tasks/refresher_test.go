package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeAggregationRunner struct {
	runs atomic.Int64
	err  error
}

func (f *fakeAggregationRunner) Run(_ context.Context) error {
	f.runs.Add(1)
	return f.err
}

func TestRefresherEnqueuesPeriodically(t *testing.T) {
	board := NewStatusBoard()
	dispatcher := NewDispatcher(board, 1)
	dispatcher.Start()
	defer dispatcher.Stop()

	runner := &fakeAggregationRunner{}
	refresher := NewRefresher(dispatcher, runner, 10*time.Millisecond)
	refresher.Start()
	defer refresher.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for runner.runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if runner.runs.Load() == 0 {
		t.Fatal("Expected at least one aggregation run")
	}

	tag := waitForStatus(t, board, "feed")
	if tag != StatusFeedRefreshed {
		t.Errorf("Expected tag %q, got: %q", StatusFeedRefreshed, tag)
	}
}

func TestAggregateTaskFailure(t *testing.T) {
	runner := &fakeAggregationRunner{err: errors.New("scrape failed")}
	update := NewAggregateTask(runner).Execute(context.Background())
	if update.Tag != StatusFeedRefreshFailed {
		t.Errorf("Expected tag %q, got: %q", StatusFeedRefreshFailed, update.Tag)
	}
}
