package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/tube-comb/app/cfg"
	"github.com/lysyi3m/tube-comb/app/database"
	"github.com/lysyi3m/tube-comb/app/feed"
	"github.com/lysyi3m/tube-comb/app/playback"
	"github.com/lysyi3m/tube-comb/app/tasks"
	"github.com/lysyi3m/tube-comb/app/youtube"
)

// searchResultLimit caps how many typed items a search answer carries.
const searchResultLimit = 10

type Handler struct {
	client     *youtube.Client
	aggregator *feed.Aggregator
	generator  *feed.Generator
	subRepo    *database.SubscriptionRepository
	feedRepo   *database.FeedRepository
	dispatcher *tasks.Dispatcher
	board      *tasks.StatusBoard
	runner     *playback.Runner
	feedLimit  int
	baseURL    string
}

func NewHandler(client *youtube.Client, aggregator *feed.Aggregator, generator *feed.Generator,
	subRepo *database.SubscriptionRepository, feedRepo *database.FeedRepository,
	dispatcher *tasks.Dispatcher, board *tasks.StatusBoard, runner *playback.Runner) *Handler {
	appCfg := cfg.Get()

	return &Handler{
		client:     client,
		aggregator: aggregator,
		generator:  generator,
		subRepo:    subRepo,
		feedRepo:   feedRepo,
		dispatcher: dispatcher,
		board:      board,
		runner:     runner,
		feedLimit:  appCfg.FeedLimit,
		baseURL:    appCfg.BaseUrl,
	}
}

// Search fetches the search results page and answers the typed content items
// found in its embedded document. A failed fetch or parse yields an error
// message, never a crash.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	page, err := h.client.SearchPage(c.Request.Context(), query)
	if err != nil {
		slog.Error("Search fetch failed", "query", query, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch search results"})
		return
	}

	doc, err := youtube.Extract(page)
	if err != nil {
		slog.Error("Search extraction failed", "query", query, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	items, err := youtube.SearchResults(doc)
	if err != nil {
		slog.Error("Search parse failed", "query", query, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if len(items) > searchResultLimit {
		items = items[:searchResultLimit]
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, h.withStatus(NewItemResponse(item)))
	}

	c.JSON(http.StatusOK, gin.H{"items": responses})
}

// GetFeed serves the cached feed from the store without re-fetching.
func (h *Handler) GetFeed(c *gin.Context) {
	limit := h.feedLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	items, err := h.aggregator.CachedFeed(limit)
	if err != nil {
		slog.Error("Failed to read cached feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read feed"})
		return
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, h.withStatus(NewItemResponse(item)))
	}

	c.JSON(http.StatusOK, gin.H{"items": responses})
}

// GetFeedRSS renders the cached feed as an RSS document.
func (h *Handler) GetFeedRSS(c *gin.Context) {
	videos, err := h.feedRepo.ListFeed(h.feedLimit)
	if err != nil {
		slog.Error("Failed to read feed for RSS", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(videos, h.baseURL, time.Now())
	if err != nil {
		slog.Error("Failed to generate RSS", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

// Subscribe dispatches a background subscription unit and answers 202; the
// outcome lands on the status board under the channel id.
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := tasks.NewSubscribeTask(youtube.NewChannel(req.ChannelID, req.Username), h.subRepo)
	h.enqueue(c, task)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	channelID := c.Param("id")
	if channelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing channel id"})
		return
	}

	task := tasks.NewUnsubscribeTask(channelID, h.subRepo)
	h.enqueue(c, task)
}

func (h *Handler) Download(c *gin.Context) {
	var req MediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := playback.ModeVideo
	switch req.Mode {
	case "", "video":
	case "audio":
		mode = playback.ModeAudio
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be video or audio"})
		return
	}

	task := tasks.NewDownloadTask(req.VideoID, req.URL, mode, h.runner)
	h.enqueue(c, task)
}

func (h *Handler) Play(c *gin.Context) {
	var req MediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := tasks.NewPlayTask(req.VideoID, req.URL, h.runner)
	h.enqueue(c, task)
}

// GetStatus answers the latest status tag recorded for an item identity.
func (h *Handler) GetStatus(c *gin.Context) {
	itemID := c.Param("id")

	tag, ok := h.board.Get(itemID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no status for item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item_id": itemID, "tag": tag})
}

func (h *Handler) GetHealth(c *gin.Context) {
	subCount, err := h.subRepo.GetSubscriptionCount()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": err.Error()})
		return
	}

	feedCount, err := h.feedRepo.GetFeedCount()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"subscriptions": subCount,
		"feed":          feedCount,
	})
}

func (h *Handler) enqueue(c *gin.Context, task tasks.TaskInterface) {
	if err := h.dispatcher.Enqueue(task); err != nil {
		slog.Error("Failed to enqueue task", "type", string(task.GetType()), "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "task queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, TaskAcceptedResponse{
		TaskID: task.GetID(),
		ItemID: task.GetItemID(),
	})
}

// withStatus overlays the latest board tag onto an item response, looked up
// by the item's stable identity.
func (h *Handler) withStatus(item ItemResponse) ItemResponse {
	switch {
	case item.Video != nil:
		if tag, ok := h.board.Get(item.Video.ID); ok {
			item.Video.Tag = tag
		}
	case item.Channel != nil:
		if tag, ok := h.board.Get(item.Channel.ID); ok {
			item.Channel.Tag = tag
		}
	case item.Playlist != nil:
		if tag, ok := h.board.Get(item.Playlist.ID); ok {
			item.Playlist.Tag = tag
		}
	}
	return item
}
