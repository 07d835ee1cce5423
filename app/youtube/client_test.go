package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"https://www.youtube.com/watch?v=abc", "https://www.youtube.com/watch?v=abc"},
		{"http://example.com/video", "http://example.com/video"},
		{"/watch?v=abc", "https://www.youtube.com/watch?v=abc"},
		{"watch?v=abc", "https://www.youtube.com/watch?v=abc"},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.raw); got != tt.expected {
			t.Errorf("Expected %q to normalize to %q, got: %q", tt.raw, tt.expected, got)
		}
	}
}

func TestClientFetch(t *testing.T) {
	var gotPath, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("page body"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "Test Agent")

	page, err := client.ChannelVideosPage(context.Background(), server.URL+"/@alpha")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if string(page) != "page body" {
		t.Errorf("Expected page body, got: %s", page)
	}
	if gotPath != "/@alpha/videos" {
		t.Errorf("Expected /@alpha/videos to be fetched, got: %s", gotPath)
	}
	if gotUA != "Test Agent" {
		t.Errorf("Expected custom user agent, got: %s", gotUA)
	}
}

func TestClientFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.Client(), DefaultUserAgent)

	if _, err := client.ChannelVideosPage(context.Background(), server.URL+"/@alpha"); err == nil {
		t.Error("Expected an error for a non-200 response")
	}
}
