package tasks

import (
	"context"
	"log/slog"

	"github.com/lysyi3m/tube-comb/app/youtube"
)

// SubscriptionStore is the subset of the subscription repository the
// subscription units need.
type SubscriptionStore interface {
	Subscribe(channelID, channelUsername string) (bool, error)
	Unsubscribe(channelID string) (bool, error)
}

type SubscribeTask struct {
	Task
	channel youtube.Channel
	subs    SubscriptionStore
}

func NewSubscribeTask(channel youtube.Channel, subs SubscriptionStore) *SubscribeTask {
	return &SubscribeTask{
		Task:    NewTask(TaskTypeSubscribe, channel.ID),
		channel: channel,
		subs:    subs,
	}
}

func (t *SubscribeTask) Execute(ctx context.Context) Update {
	created, err := t.subs.Subscribe(t.channel.ID, t.channel.Username)

	switch {
	case err != nil:
		slog.Error("Subscribe failed", "channel", t.channel.ID, "error", err)
		return Update{ItemID: t.ItemID, Tag: StatusSubscribeFailed}
	case !created:
		return Update{ItemID: t.ItemID, Tag: StatusAlreadySubscribed}
	default:
		return Update{ItemID: t.ItemID, Tag: StatusSubscribed}
	}
}

type UnsubscribeTask struct {
	Task
	channelID string
	subs      SubscriptionStore
}

func NewUnsubscribeTask(channelID string, subs SubscriptionStore) *UnsubscribeTask {
	return &UnsubscribeTask{
		Task:      NewTask(TaskTypeUnsubscribe, channelID),
		channelID: channelID,
		subs:      subs,
	}
}

func (t *UnsubscribeTask) Execute(ctx context.Context) Update {
	removed, err := t.subs.Unsubscribe(t.channelID)

	switch {
	case err != nil:
		slog.Error("Unsubscribe failed", "channel", t.channelID, "error", err)
		return Update{ItemID: t.ItemID, Tag: StatusUnsubscribeFailed}
	case !removed:
		return Update{ItemID: t.ItemID, Tag: StatusNotSubscribed}
	default:
		return Update{ItemID: t.ItemID, Tag: StatusUnsubscribed}
	}
}
