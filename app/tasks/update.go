package tasks

import "sync"

// Update is a completion event posted by a background unit: the identity of
// the item acted on plus its new status tag.
type Update struct {
	ItemID string
	Tag    string
}

// User-visible status tags.
const (
	StatusSubscribed        = "Subscribed"
	StatusAlreadySubscribed = "You're already subscribed to this channel"
	StatusSubscribeFailed   = "Some error occurred on subscribe"
	StatusUnsubscribed      = "Unsubscribed"
	StatusNotSubscribed     = "You're not subscribed to this channel"
	StatusUnsubscribeFailed = "Some error occurred on unsubscribe"
	StatusDownloaded        = "Downloaded!"
	StatusDownloadFailed    = "Some error occurred on download"
	StatusPlaybackDone      = "Playback finished"
	StatusPlaybackFailed    = "Some error occurred on playback"
	StatusFeedRefreshed     = "Feed refreshed"
	StatusFeedRefreshFailed = "Some error occurred on feed refresh"
)

// StatusBoard records the latest status tag per item identity. Writes come
// only from the dispatcher's single consumer loop; reads may come from any
// goroutine.
type StatusBoard struct {
	mu   sync.RWMutex
	tags map[string]string
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{tags: make(map[string]string)}
}

func (b *StatusBoard) Set(itemID, tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tags[itemID] = tag
}

func (b *StatusBoard) Get(itemID string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	tag, ok := b.tags[itemID]
	return tag, ok
}
