package database

import "time"

// Subscription is a persisted channel subscription. Rows are created on
// subscribe, deleted on unsubscribe, and otherwise immutable.
type Subscription struct {
	ChannelID       string
	ChannelUsername string
}

// FeedVideo is a feed row joined with its owning subscription.
type FeedVideo struct {
	ID              string
	Title           string
	URL             string
	ChannelID       string
	ChannelUsername string
	PublishedAt     time.Time
}
