package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultUserAgent is a fixed desktop-browser agent; the site serves a
// different document layout to unknown agents.
const DefaultUserAgent = "Mozilla/5.0"

// Client fetches rendered pages from the site.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{httpClient: httpClient, userAgent: userAgent}
}

// SearchPage fetches the search results page for the given query.
func (c *Client) SearchPage(ctx context.Context, query string) ([]byte, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/results?search_query=%s", BaseURL, url.QueryEscape(query)))
}

// ChannelVideosPage fetches a channel's /videos page.
func (c *Client) ChannelVideosPage(ctx context.Context, channelURL string) ([]byte, error) {
	return c.fetch(ctx, channelURL+"/videos")
}

func (c *Client) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// NormalizeURL resolves site-relative paths and bare handles to absolute URLs.
func NormalizeURL(raw string) string {
	switch {
	case strings.HasPrefix(raw, "http"):
		return raw
	case strings.HasPrefix(raw, "/"):
		return BaseURL + raw
	default:
		return BaseURL + "/" + raw
	}
}
