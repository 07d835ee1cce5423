package tasks

import (
	"context"
	"log/slog"
)

// feedItemID is the board identity for whole-feed operations.
const feedItemID = "feed"

// AggregationRunner runs one full pass over all subscriptions.
type AggregationRunner interface {
	Run(ctx context.Context) error
}

type AggregateTask struct {
	Task
	runner AggregationRunner
}

func NewAggregateTask(runner AggregationRunner) *AggregateTask {
	return &AggregateTask{
		Task:   NewTask(TaskTypeAggregate, feedItemID),
		runner: runner,
	}
}

func (t *AggregateTask) Execute(ctx context.Context) Update {
	if err := t.runner.Run(ctx); err != nil {
		slog.Error("Aggregation failed", "error", err)
		return Update{ItemID: t.ItemID, Tag: StatusFeedRefreshFailed}
	}
	return Update{ItemID: t.ItemID, Tag: StatusFeedRefreshed}
}
