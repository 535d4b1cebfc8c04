package handler

import (
	"context"
	"log/slog"
	"net/http"

	"storydesk/pkg/slug"

	"github.com/gin-gonic/gin"
)

type Reviser interface {
	ReviseArticle(ctx context.Context, articleID int64, notes string) error
}

type RevisionHandler struct {
	store   ArticleStore
	reviser Reviser
}

func NewRevisionHandler(store ArticleStore, reviser Reviser) *RevisionHandler {
	return &RevisionHandler{store: store, reviser: reviser}
}

func (h *RevisionHandler) SubmitRevision(c *gin.Context) {
	id, ok := slug.ParseID(c.Param("slug"))
	if !ok {
		slog.Warn("invalid article slug", "slug", c.Param("slug"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article slug"})
		return
	}

	var req RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid revision payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.reviser.ReviseArticle(c.Request.Context(), id, req.Notes); err != nil {
		slog.Error("error revising article", "error", err, "article_id", id)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"revised": true})
}

func (h *RevisionHandler) GetRevision(c *gin.Context) {
	id, ok := slug.ParseID(c.Param("slug"))
	if !ok {
		slog.Warn("invalid article slug", "slug", c.Param("slug"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article slug"})
		return
	}

	article, err := h.store.GetByID(id)
	if err != nil {
		slog.Error("error fetching article revision", "error", err, "article_id", id)
		respondError(c, err)
		return
	}

	if article.Revised == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}
