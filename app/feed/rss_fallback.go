package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/tube-comb/app/youtube"
)

// RSSFallback reads a channel's public RSS feed. The rendered page is the
// primary source because it carries the richer item shapes; the RSS feed only
// steps in when the embedded document cannot be located or parsed.
type RSSFallback struct {
	parser *gofeed.Parser
}

func NewRSSFallback(userAgent string) *RSSFallback {
	p := gofeed.NewParser()
	p.UserAgent = userAgent
	return &RSSFallback{parser: p}
}

// ChannelVideos fetches and maps the channel's RSS feed. Entries without a
// parsed publish date are dropped, mirroring the scrape path's handling of
// unresolved publish times.
func (f *RSSFallback) ChannelVideos(ctx context.Context, channel youtube.Channel) ([]youtube.Video, error) {
	feedURL := fmt.Sprintf("%s/feeds/videos.xml?channel_id=%s", youtube.BaseURL, channel.ID)

	parsed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse channel RSS: %w", err)
	}

	var videos []youtube.Video
	for _, item := range parsed.Items {
		if item.PublishedParsed == nil {
			continue
		}

		publishedAt := *item.PublishedParsed
		videos = append(videos, youtube.Video{
			ID:          strings.TrimPrefix(item.GUID, "yt:video:"),
			Title:       item.Title,
			URL:         item.Link,
			Channel:     channel,
			PublishedAt: &publishedAt,
		})
	}
	return videos, nil
}
