package api

import (
	"time"

	"github.com/lysyi3m/tube-comb/app/youtube"
)

type ChannelResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	URL      string `json:"url"`
	Verified bool   `json:"verified"`
	Tag      string `json:"tag,omitempty"`
}

type VideoResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	URL         string           `json:"url"`
	Channel     ChannelResponse  `json:"channel"`
	PublishedAt *time.Time       `json:"published_at,omitempty"`
	Views       *int64           `json:"views,omitempty"`
	Duration    string           `json:"duration,omitempty"`
	Thumbnail   string           `json:"thumbnail,omitempty"`
	Tag         string           `json:"tag,omitempty"`
}

type UploaderResponse struct {
	Name    string           `json:"name"`
	Channel *ChannelResponse `json:"channel,omitempty"`
}

type PlaylistResponse struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	URL      string           `json:"url"`
	Uploader UploaderResponse `json:"uploader"`
	Tag      string           `json:"tag,omitempty"`
}

// ItemResponse is the wire form of a content item: exactly one of the three
// payload fields is set, matching the closed union.
type ItemResponse struct {
	Type     string            `json:"type"`
	Video    *VideoResponse    `json:"video,omitempty"`
	Channel  *ChannelResponse  `json:"channel,omitempty"`
	Playlist *PlaylistResponse `json:"playlist,omitempty"`
}

func NewItemResponse(item youtube.ContentItem) ItemResponse {
	switch v := item.(type) {
	case youtube.Video:
		video := newVideoResponse(v)
		return ItemResponse{Type: "video", Video: &video}
	case youtube.Channel:
		channel := newChannelResponse(v)
		return ItemResponse{Type: "channel", Channel: &channel}
	case youtube.Playlist:
		playlist := newPlaylistResponse(v)
		return ItemResponse{Type: "playlist", Playlist: &playlist}
	default:
		return ItemResponse{Type: "unknown"}
	}
}

func newChannelResponse(c youtube.Channel) ChannelResponse {
	return ChannelResponse{
		ID:       c.ID,
		Username: c.Username,
		URL:      c.URL,
		Verified: c.Verified,
		Tag:      c.Tag,
	}
}

func newVideoResponse(v youtube.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID,
		Title:       v.Title,
		URL:         v.URL,
		Channel:     newChannelResponse(v.Channel),
		PublishedAt: v.PublishedAt,
		Views:       v.Views,
		Duration:    v.Duration,
		Thumbnail:   v.Thumbnail,
		Tag:         v.Tag,
	}
}

func newPlaylistResponse(p youtube.Playlist) PlaylistResponse {
	uploader := UploaderResponse{Name: p.Uploader.UploaderName()}
	if uc, ok := p.Uploader.(youtube.UploaderChannel); ok {
		channel := newChannelResponse(uc.Channel)
		uploader.Channel = &channel
	}

	return PlaylistResponse{
		ID:       p.ID,
		Title:    p.Title,
		URL:      p.URL,
		Uploader: uploader,
		Tag:      p.Tag,
	}
}

type SubscribeRequest struct {
	ChannelID string `json:"channel_id" binding:"required"`
	Username  string `json:"username" binding:"required"`
}

type MediaRequest struct {
	VideoID string `json:"video_id" binding:"required"`
	URL     string `json:"url" binding:"required"`
	Mode    string `json:"mode"`
}

type TaskAcceptedResponse struct {
	TaskID string `json:"task_id"`
	ItemID string `json:"item_id"`
}
