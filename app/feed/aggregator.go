package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/lysyi3m/tube-comb/app/database"
	"github.com/lysyi3m/tube-comb/app/youtube"
)

// DefaultWindow is the trailing recency window a video must fall into at
// aggregation time to be persisted.
const DefaultWindow = 7 * 24 * time.Hour

// PageFetcher fetches a channel's rendered /videos page.
type PageFetcher interface {
	ChannelVideosPage(ctx context.Context, channelURL string) ([]byte, error)
}

// ChannelSource produces recent videos for a channel; used as a fallback when
// the rendered page cannot be parsed.
type ChannelSource interface {
	ChannelVideos(ctx context.Context, channel youtube.Channel) ([]youtube.Video, error)
}

// SubscriptionStore is the subset of the subscription repository the
// aggregator reads.
type SubscriptionStore interface {
	GetSubscriptions() ([]database.Subscription, error)
}

// FeedStore is the subset of the feed repository the aggregator uses.
type FeedStore interface {
	InsertVideo(v database.FeedVideo) error
	ListFeed(limit int) ([]database.FeedVideo, error)
}

// Aggregator runs one full pass over all subscriptions, producing candidate
// feed entries, and serves the cached feed from the store.
type Aggregator struct {
	fetcher  PageFetcher
	fallback ChannelSource
	subs     SubscriptionStore
	feed     FeedStore
	window   time.Duration
	now      func() time.Time
}

// NewAggregator creates an aggregator. fallback may be nil, in which case a
// channel whose page cannot be parsed contributes nothing to the run.
func NewAggregator(fetcher PageFetcher, fallback ChannelSource, subs SubscriptionStore, feed FeedStore) *Aggregator {
	return &Aggregator{
		fetcher:  fetcher,
		fallback: fallback,
		subs:     subs,
		feed:     feed,
		window:   DefaultWindow,
		now:      time.Now,
	}
}

// Run performs a single synchronous aggregation pass: sequential fetch per
// subscribed channel, window filter, ascending sort by publish time, then
// best-effort persistence. A failing channel or a failing insert never aborts
// the rest of the run.
func (a *Aggregator) Run(ctx context.Context) error {
	subs, err := a.subs.GetSubscriptions()
	if err != nil {
		return fmt.Errorf("failed to load subscriptions: %w", err)
	}

	startTime := a.now()
	cutoff := startTime.Add(-a.window)

	var candidates []youtube.Video
	for _, sub := range subs {
		channel := youtube.NewChannel(sub.ChannelID, sub.ChannelUsername)

		videos, err := a.channelVideos(ctx, channel)
		if err != nil {
			slog.Warn("Skipping channel in aggregation run", "channel", channel.ID, "error", err)
			continue
		}
		candidates = append(candidates, videos...)
	}

	// Unresolved publish times were already dropped by the mapper; the window
	// filter still guards against a fallback source with no dates.
	var kept []youtube.Video
	for _, v := range candidates {
		if v.PublishedAt != nil && !v.PublishedAt.Before(cutoff) {
			kept = append(kept, v)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].PublishedAt.Before(*kept[j].PublishedAt)
	})

	inserted := 0
	for _, v := range kept {
		err := a.feed.InsertVideo(database.FeedVideo{
			ID:          v.ID,
			Title:       v.Title,
			URL:         v.URL,
			ChannelID:   v.Channel.ID,
			PublishedAt: *v.PublishedAt,
		})
		if err != nil {
			slog.Warn("Failed to persist feed video", "video", v.ID, "error", err)
			continue
		}
		inserted++
	}

	slog.Info("Aggregation run completed",
		"subscriptions", len(subs),
		"candidates", len(candidates),
		"kept", len(kept),
		"inserted", inserted,
		"duration", a.now().Sub(startTime))

	return nil
}

// CachedFeed reads the stored feed without re-fetching, newest first,
// reconstituting videos with a fresh channel snapshot.
func (a *Aggregator) CachedFeed(limit int) ([]youtube.ContentItem, error) {
	rows, err := a.feed.ListFeed(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached feed: %w", err)
	}

	items := make([]youtube.ContentItem, 0, len(rows))
	for _, row := range rows {
		publishedAt := row.PublishedAt
		items = append(items, youtube.Video{
			ID:          row.ID,
			Title:       row.Title,
			URL:         row.URL,
			Channel:     youtube.NewChannel(row.ChannelID, row.ChannelUsername),
			PublishedAt: &publishedAt,
		})
	}
	return items, nil
}

func (a *Aggregator) channelVideos(ctx context.Context, channel youtube.Channel) ([]youtube.Video, error) {
	videos, err := a.scrapeChannel(ctx, channel)
	if err == nil {
		return videos, nil
	}

	if a.fallback == nil {
		return nil, err
	}

	slog.Warn("Channel page scrape failed, falling back to RSS", "channel", channel.ID, "error", err)
	return a.fallback.ChannelVideos(ctx, channel)
}

func (a *Aggregator) scrapeChannel(ctx context.Context, channel youtube.Channel) ([]youtube.Video, error) {
	page, err := a.fetcher.ChannelVideosPage(ctx, channel.URL)
	if err != nil {
		return nil, err
	}

	doc, err := youtube.Extract(page)
	if err != nil {
		return nil, err
	}

	return youtube.ChannelVideos(doc, channel, a.now())
}
