package youtube

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Fixed paths into the embedded document. The site controls this layout.
const (
	searchContentsPath = "contents.twoColumnSearchResultsRenderer.primaryContents.sectionListRenderer.contents.0.itemSectionRenderer.contents"
	channelGridPath    = "contents.twoColumnBrowseResultsRenderer.tabs.1.tabRenderer.content.richGridRenderer.contents"

	webCommandURLPath   = "navigationEndpoint.commandMetadata.webCommandMetadata.url"
	playlistMetaPath    = "metadata.lockupMetadataViewModel"
	playlistUploaderTxt = playlistMetaPath + ".metadata.contentMetadataViewModel.metadataRows.0.metadataParts.0.text"
)

// SearchResults maps the search page document into typed content items. Each
// element of the item list is inspected for exactly one of the three known
// container keys; elements matching none produce no item. Relative order is
// preserved.
func SearchResults(doc gjson.Result) ([]ContentItem, error) {
	list := doc.Get(searchContentsPath)
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: search contents", ErrSchemaMismatch)
	}

	var items []ContentItem
	for _, node := range list.Array() {
		switch {
		case node.Get("videoRenderer").Exists():
			video, err := mapVideo(node.Get("videoRenderer"))
			if err != nil {
				slog.Warn("Skipping malformed video item", "error", err)
				continue
			}
			items = append(items, video)
		case node.Get("channelRenderer").Exists():
			items = append(items, mapChannel(node.Get("channelRenderer")))
		case node.Get("lockupViewModel").Exists():
			items = append(items, mapPlaylist(node.Get("lockupViewModel")))
		}
	}
	return items, nil
}

// ChannelVideos maps a channel's video grid into videos attributed to the
// given channel, resolving each entry's relative publish time against now.
// Grid entries whose publish time does not resolve are dropped.
func ChannelVideos(doc gjson.Result, channel Channel, now time.Time) ([]Video, error) {
	grid := doc.Get(channelGridPath)
	if !grid.IsArray() {
		return nil, fmt.Errorf("%w: video grid for channel %s", ErrSchemaMismatch, channel.ID)
	}

	var videos []Video
	for _, node := range grid.Array() {
		renderer := node.Get("richItemRenderer.content.videoRenderer")
		if !renderer.Exists() {
			continue
		}

		publishedAt := ResolveRelativeTime(renderer.Get("publishedTimeText.simpleText").String(), now)
		if publishedAt == nil {
			continue
		}

		id := renderer.Get("videoId").String()
		videos = append(videos, Video{
			ID:          id,
			Title:       renderer.Get("title.runs.0.text").String(),
			URL:         BaseURL + "/watch?v=" + id,
			Channel:     channel,
			PublishedAt: publishedAt,
		})
	}
	return videos, nil
}

func mapVideo(renderer gjson.Result) (ContentItem, error) {
	// The uploader id is embedded in a navigation-link path ("/@handle");
	// strip the single leading separator.
	channelID := strings.TrimPrefix(renderer.Get("ownerText.runs.0."+webCommandURLPath).String(), "/")

	video := Video{
		ID:    renderer.Get("videoId").String(),
		Title: renderer.Get("title.runs.0.text").String(),
		URL:   BaseURL + renderer.Get(webCommandURLPath).String(),
		Channel: Channel{
			ID:       channelID,
			Username: renderer.Get("ownerText.runs.0.text").String(),
			URL:      BaseURL + "/" + channelID,
			Verified: hasVerifiedBadge(renderer.Get("ownerBadges")),
		},
		Duration: renderer.Get("lengthText.simpleText").String(),
	}

	if thumbs := renderer.Get("thumbnail.thumbnails").Array(); len(thumbs) > 0 {
		video.Thumbnail = thumbs[len(thumbs)-1].Get("url").String()
	}

	if viewText := renderer.Get("viewCountText.simpleText"); viewText.Exists() {
		views, err := parseViewCount(viewText.String())
		if err != nil {
			return nil, err
		}
		video.Views = &views
	}

	return video, nil
}

func mapChannel(renderer gjson.Result) ContentItem {
	return Channel{
		ID:       renderer.Get("channelId").String(),
		Username: renderer.Get("title.simpleText").String(),
		URL:      BaseURL + renderer.Get(webCommandURLPath).String(),
	}
}

func mapPlaylist(renderer gjson.Result) ContentItem {
	path := renderer.Get("rendererContext.commandContext.onTap.innertubeCommand.commandMetadata.webCommandMetadata.url").String()

	// The upstream document marks a collection without a single owning channel
	// by leaving the canonical channel link unresolved (a stringified null in
	// the raw document), not by omitting the metadata row. Detect that
	// sentinel explicitly before treating the row as a channel reference.
	canonical := renderer.Get(playlistUploaderTxt + ".commandRuns.0.onTap.innertubeCommand.browseEndpoint.canonicalBaseUrl")
	name := renderer.Get(playlistUploaderTxt + ".content").String()

	var uploader Uploader
	if !canonical.Exists() || canonical.Type == gjson.Null {
		uploader = MultiUploaders{DisplayName: name}
	} else {
		id := strings.TrimPrefix(canonical.String(), "/")
		uploader = UploaderChannel{Channel: Channel{
			ID:       id,
			Username: name,
			URL:      BaseURL + "/" + id,
		}}
	}

	return Playlist{
		ID:       path,
		Title:    renderer.Get(playlistMetaPath + ".title.content").String(),
		URL:      BaseURL + path,
		Uploader: uploader,
	}
}

var errNoSeparator = errors.New("no space separator")

// parseViewCount parses formatted view-count text such as "1.234.567 visualizações":
// the substring before the first space, with thousand-separator punctuation
// removed. Malformed text is a mapping error, never a silent zero.
func parseViewCount(text string) (int64, error) {
	head, _, found := strings.Cut(text, " ")
	if !found {
		return 0, &FieldError{Field: "viewCountText", Value: text, Err: errNoSeparator}
	}

	n, err := strconv.ParseInt(strings.ReplaceAll(head, ".", ""), 10, 64)
	if err != nil {
		return 0, &FieldError{Field: "viewCountText", Value: text, Err: err}
	}
	return n, nil
}

// hasVerifiedBadge reports whether any entry of the owner badge list carries
// the VERIFIED style marker. An absent badge list means not verified.
func hasVerifiedBadge(badges gjson.Result) bool {
	for _, badge := range badges.Array() {
		if strings.Contains(badge.Get("metadataBadgeRenderer.style").String(), "VERIFIED") {
			return true
		}
	}
	return false
}
