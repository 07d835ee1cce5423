package feed

import (
	"fmt"
	"time"

	"github.com/eduncan911/podcast"

	"github.com/lysyi3m/tube-comb/app/database"
)

// Generator renders the stored feed as an RSS document so the aggregated
// subscriptions can be consumed by any feed reader.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Run(videos []database.FeedVideo, baseURL string, now time.Time) (string, error) {
	p := podcast.New(
		"tube-comb feed",
		baseURL+"/feed.rss",
		"Videos published by subscribed channels over the last week.",
		&now, &now,
	)

	for _, v := range videos {
		publishedAt := v.PublishedAt
		item := podcast.Item{
			Title:       v.Title,
			Description: fmt.Sprintf("New video from %s", v.ChannelUsername),
			Link:        v.URL,
			PubDate:     &publishedAt,
		}
		if _, err := p.AddItem(item); err != nil {
			return "", fmt.Errorf("failed to add feed item %s: %w", v.ID, err)
		}
	}

	return p.String(), nil
}
