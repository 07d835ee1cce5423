package database

import (
	"database/sql"
	"fmt"
	"time"
)

// FeedRepository handles database operations for aggregated feed videos.
type FeedRepository struct {
	db *sql.DB
}

// NewFeedRepository creates a new feed repository.
func NewFeedRepository(db *sql.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// InsertVideo stores one aggregated video. Re-running aggregation over an
// overlapping window must not duplicate rows, so conflicts on the video id
// are ignored.
func (r *FeedRepository) InsertVideo(v FeedVideo) error {
	_, err := r.db.Exec(`
		INSERT INTO feed (id, title, url, channel, published_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, v.ID, v.Title, v.URL, v.ChannelID, v.PublishedAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert feed video: %w", err)
	}

	return nil
}

// ListFeed returns the most recently published feed videos joined with their
// owning channel's current username, newest first.
func (r *FeedRepository) ListFeed(limit int) ([]FeedVideo, error) {
	rows, err := r.db.Query(`
		SELECT feed.id, feed.title, feed.url, feed.published_at,
		       subscriptions.channel_id, subscriptions.channel_username
		FROM feed
		JOIN subscriptions ON feed.channel = subscriptions.channel_id
		ORDER BY feed.published_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	defer rows.Close()

	var videos []FeedVideo
	for rows.Next() {
		var v FeedVideo
		var publishedAt string
		err := rows.Scan(&v.ID, &v.Title, &v.URL, &publishedAt, &v.ChannelID, &v.ChannelUsername)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}

		v.PublishedAt, err = time.Parse(time.RFC3339, publishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse published_at %q: %w", publishedAt, err)
		}

		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed rows: %w", err)
	}

	return videos, nil
}

// GetFeedCount returns the total number of stored feed videos.
func (r *FeedRepository) GetFeedCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM feed`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get feed count: %w", err)
	}
	return count, nil
}
