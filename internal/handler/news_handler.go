package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storydesk/pkg/news"

	"github.com/gin-gonic/gin"
)

type NewsCache interface {
	Save(ctx context.Context, doc *news.Document) error
	Latest(ctx context.Context) (*news.Document, error)
}

type NewsHandler struct {
	fetcher news.Fetcher
	cache   NewsCache
}

func NewNewsHandler(fetcher news.Fetcher, cache NewsCache) *NewsHandler {
	return &NewsHandler{fetcher: fetcher, cache: cache}
}

func (h *NewsHandler) GetLatest(c *gin.Context) {
	doc, err := h.cache.Latest(c.Request.Context())
	if err != nil {
		slog.Error("error fetching news cache", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Refresh fetches all categories and overwrites the cache document. The
// recurring refresh lives in cmd/newsfetcher; this endpoint is for manual
// triggers.
func (h *NewsHandler) Refresh(c *gin.Context) {
	articles, err := h.fetcher.FetchAll()
	if err != nil {
		slog.Error("error fetching news", "error", err)
		respondError(c, err)
		return
	}

	doc := &news.Document{
		Categories:  articles,
		LastUpdated: time.Now(),
	}

	if err := h.cache.Save(c.Request.Context(), doc); err != nil {
		slog.Error("error saving news cache", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"refreshed": true, "categories": len(articles)})
}
