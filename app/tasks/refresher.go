package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Refresher periodically enqueues a full aggregation pass so the stored feed
// keeps tracking subscriptions without restarts.
type Refresher struct {
	dispatcher *Dispatcher
	runner     AggregationRunner
	interval   time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewRefresher(dispatcher *Dispatcher, runner AggregationRunner, interval time.Duration) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())

	return &Refresher{
		dispatcher: dispatcher,
		runner:     runner,
		interval:   interval,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (r *Refresher) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				if err := r.dispatcher.Enqueue(NewAggregateTask(r.runner)); err != nil {
					slog.Warn("Failed to enqueue aggregation task", "error", err)
				}
			}
		}
	}()
}

func (r *Refresher) Stop() {
	r.cancel()
	r.wg.Wait()
}
