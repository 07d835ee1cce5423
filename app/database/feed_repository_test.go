package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertVideo(t *testing.T) {
	db := testDB(t)
	subRepo := NewSubscriptionRepository(db)
	feedRepo := NewFeedRepository(db)

	_, err := subRepo.Subscribe("@alpha", "Alpha")
	require.NoError(t, err)

	err = feedRepo.InsertVideo(FeedVideo{
		ID:          "v-1",
		Title:       "First Upload",
		URL:         "https://www.youtube.com/watch?v=v-1",
		ChannelID:   "@alpha",
		PublishedAt: time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	count, err := feedRepo.GetFeedCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsertVideoDuplicateIgnored(t *testing.T) {
	db := testDB(t)
	subRepo := NewSubscriptionRepository(db)
	feedRepo := NewFeedRepository(db)

	_, err := subRepo.Subscribe("@alpha", "Alpha")
	require.NoError(t, err)

	video := FeedVideo{
		ID:          "v-1",
		Title:       "First Upload",
		URL:         "https://www.youtube.com/watch?v=v-1",
		ChannelID:   "@alpha",
		PublishedAt: time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, feedRepo.InsertVideo(video))
	require.NoError(t, feedRepo.InsertVideo(video))

	count, err := feedRepo.GetFeedCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListFeed(t *testing.T) {
	db := testDB(t)
	subRepo := NewSubscriptionRepository(db)
	feedRepo := NewFeedRepository(db)

	_, err := subRepo.Subscribe("@alpha", "Alpha")
	require.NoError(t, err)
	_, err = subRepo.Subscribe("@beta", "Beta")
	require.NoError(t, err)

	base := time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)
	videos := []FeedVideo{
		{ID: "oldest", Title: "Oldest", URL: "u1", ChannelID: "@alpha", PublishedAt: base},
		{ID: "newest", Title: "Newest", URL: "u2", ChannelID: "@beta", PublishedAt: base.Add(2 * time.Hour)},
		{ID: "middle", Title: "Middle", URL: "u3", ChannelID: "@alpha", PublishedAt: base.Add(time.Hour)},
	}
	for _, v := range videos {
		require.NoError(t, feedRepo.InsertVideo(v))
	}

	feed, err := feedRepo.ListFeed(10)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	assert.Equal(t, "newest", feed[0].ID)
	assert.Equal(t, "middle", feed[1].ID)
	assert.Equal(t, "oldest", feed[2].ID)

	assert.Equal(t, "Beta", feed[0].ChannelUsername)
	assert.True(t, feed[0].PublishedAt.Equal(base.Add(2*time.Hour)))
}

func TestListFeedLimit(t *testing.T) {
	db := testDB(t)
	subRepo := NewSubscriptionRepository(db)
	feedRepo := NewFeedRepository(db)

	_, err := subRepo.Subscribe("@alpha", "Alpha")
	require.NoError(t, err)

	base := time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, feedRepo.InsertVideo(FeedVideo{
			ID:          string(rune('a' + i)),
			Title:       "Video",
			URL:         "u",
			ChannelID:   "@alpha",
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	feed, err := feedRepo.ListFeed(2)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "e", feed[0].ID)
	assert.Equal(t, "d", feed[1].ID)
}

func TestListFeedSkipsUnsubscribedChannels(t *testing.T) {
	db := testDB(t)
	subRepo := NewSubscriptionRepository(db)
	feedRepo := NewFeedRepository(db)

	_, err := subRepo.Subscribe("@alpha", "Alpha")
	require.NoError(t, err)

	require.NoError(t, feedRepo.InsertVideo(FeedVideo{
		ID:          "v-1",
		Title:       "Kept",
		URL:         "u",
		ChannelID:   "@alpha",
		PublishedAt: time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC),
	}))

	removed, err := subRepo.Unsubscribe("@alpha")
	require.NoError(t, err)
	require.True(t, removed)

	// The stored row survives but the join over subscriptions hides it.
	count, err := feedRepo.GetFeedCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	feed, err := feedRepo.ListFeed(10)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
