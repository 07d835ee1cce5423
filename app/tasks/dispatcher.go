package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher runs background units on a worker pool and funnels their
// completion updates through a single consumer loop into the status board.
// Units run concurrently with each other and with continued interactive use;
// state mutation happens only in the consumer loop, keyed by item identity,
// so concurrent list replacement in a caller never corrupts status delivery.
type Dispatcher struct {
	board       *StatusBoard
	workerCount int
	taskTimeout time.Duration
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
	updates     chan Update
}

func NewDispatcher(board *StatusBoard, workerCount int) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		board:       board,
		workerCount: workerCount,
		taskTimeout: 5 * time.Minute,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 64),
		updates:     make(chan Update, 64),
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	d.wg.Add(1)
	go d.updateLoop()
}

// Stop cancels the pool and waits for in-flight units. The channels are left
// open so a late Enqueue fails cleanly instead of panicking.
func (d *Dispatcher) Stop() {
	d.cancel()
	d.wg.Wait()
}

// Enqueue hands a unit to the worker pool without blocking the caller.
func (d *Dispatcher) Enqueue(task TaskInterface) error {
	if d.ctx.Err() != nil {
		return d.ctx.Err()
	}

	select {
	case d.taskQueue <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for {
		select {
		case task := <-d.taskQueue:
			d.executeTask(id, task)

		case <-d.ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(d.ctx, d.taskTimeout)
	defer cancel()

	update := task.Execute(taskCtx)

	slog.Info("Task completed",
		"worker_id", workerID,
		"type", string(task.GetType()),
		"id", task.GetID(),
		"item", task.GetItemID(),
		"tag", update.Tag,
		"duration", task.GetDuration())

	select {
	case d.updates <- update:
	case <-d.ctx.Done():
	}
}

// updateLoop is the single consumer of completion updates.
func (d *Dispatcher) updateLoop() {
	defer d.wg.Done()

	for {
		select {
		case update := <-d.updates:
			d.board.Set(update.ItemID, update.Tag)

		case <-d.ctx.Done():
			// Drain what the workers already posted.
			for {
				select {
				case update := <-d.updates:
					d.board.Set(update.ItemID, update.Tag)
				default:
					return
				}
			}
		}
	}
}
