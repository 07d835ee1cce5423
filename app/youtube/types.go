package youtube

import "time"

// BaseURL is the site root every scraped relative path is resolved against.
const BaseURL = "https://www.youtube.com"

// ContentItem is a single discovered entity: a video, a channel or a playlist.
// The set of implementations is closed; unrecognized source shapes produce no
// item at all.
type ContentItem interface {
	contentItem()
}

// Channel identifies an uploader. Channels are value-copied into every record
// that references them; there is no shared live reference.
type Channel struct {
	ID       string
	Username string
	URL      string
	Verified bool
	Tag      string // transient status string for UI feedback, never persisted
}

// NewChannel builds a channel snapshot from its stored identity.
func NewChannel(id, username string) Channel {
	return Channel{
		ID:       id,
		Username: username,
		URL:      BaseURL + "/" + id,
	}
}

type Video struct {
	ID          string
	Title       string
	URL         string
	Channel     Channel
	PublishedAt *time.Time
	Views       *int64
	Duration    string
	Thumbnail   string
	Tag         string
}

type Playlist struct {
	ID       string
	Title    string
	URL      string
	Uploader Uploader
	Tag      string
}

// Uploader is the owner of a playlist: either a single channel or a bare
// display name when the collection has no single owning channel.
type Uploader interface {
	UploaderName() string
}

type MultiUploaders struct {
	DisplayName string
}

func (m MultiUploaders) UploaderName() string { return m.DisplayName }

type UploaderChannel struct {
	Channel Channel
}

func (u UploaderChannel) UploaderName() string { return u.Channel.Username }

func (Video) contentItem()    {}
func (Channel) contentItem()  {}
func (Playlist) contentItem() {}
