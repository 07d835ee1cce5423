package tasks

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

type TaskType string

const (
	TaskTypeSubscribe   TaskType = "subscribe"
	TaskTypeUnsubscribe TaskType = "unsubscribe"
	TaskTypeDownload    TaskType = "download"
	TaskTypePlay        TaskType = "play"
	TaskTypeAggregate   TaskType = "aggregate"
)

// TaskInterface is an independent background unit of work. Execute always
// produces an Update, even when the underlying operation soft-fails: the
// status string is the user-visible outcome.
type TaskInterface interface {
	Execute(ctx context.Context) Update
	GetID() string
	GetType() TaskType
	GetItemID() string
	Start()
	GetDuration() time.Duration
}

// Task carries the bookkeeping shared by all background units. ItemID is the
// stable identity of the content item the unit acts on; completion updates
// are looked up by it, never by list position.
type Task struct {
	ID        string
	Type      TaskType
	ItemID    string
	StartedAt *time.Time
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetItemID() string {
	return t.ItemID
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, itemID string) Task {
	uniqueID := fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(10000))

	return Task{
		ID:     uniqueID,
		Type:   taskType,
		ItemID: itemID,
	}
}
