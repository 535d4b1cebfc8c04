package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"storydesk/internal/apperr"
	"storydesk/internal/model"
	"storydesk/pkg/slug"

	"github.com/gin-gonic/gin"
)

type ArticleStore interface {
	GetByID(id int64) (*model.Article, error)
	GetBySubmissionID(submissionID int64) (*model.Article, error)
}

type Publisher interface {
	PublishArticle(ctx context.Context, articleID int64, version string) error
}

type ArticleHandler struct {
	store     ArticleStore
	publisher Publisher
}

func NewArticleHandler(store ArticleStore, publisher Publisher) *ArticleHandler {
	return &ArticleHandler{store: store, publisher: publisher}
}

func toArticleResponse(a *model.Article) ArticleResponse {
	res := ArticleResponse{
		ID:        a.ID,
		Slug:      slug.Make(a.Title, a.ID),
		Title:     a.Title,
		Content:   a.Content,
		Plan:      a.Plan,
		Author:    a.Author,
		ImageURL:  a.ImageURL,
		Published: a.Published,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}

	if a.PublishedAt != nil {
		res.PublishedAt = a.PublishedAt.Format(time.RFC3339)
	}

	if a.Revised != nil {
		res.Revised = &RevisedResponse{
			Title:   a.Revised.Title,
			Content: a.Revised.Content,
		}
	}

	return res
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := slug.ParseID(c.Param("slug"))
	if !ok {
		slog.Warn("invalid article slug", "slug", c.Param("slug"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article slug"})
		return
	}

	article, err := h.store.GetByID(id)
	if err != nil {
		slog.Error("error fetching article", "error", err, "article_id", id)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// GetStatus is the post-checkout poll: not_ready until generation has
// persisted an article for the submission.
func (h *ArticleHandler) GetStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("submissionId"), 10, 64)
	if err != nil {
		slog.Warn("invalid submission id", "id", c.Param("submissionId"), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	article, err := h.store.GetBySubmissionID(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusOK, StatusResponse{Status: "not_ready"})
			return
		}
		slog.Error("error checking status", "error", err, "submission_id", id)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:    "ready",
		ArticleID: article.ID,
		Slug:      slug.Make(article.Title, article.ID),
	})
}

func (h *ArticleHandler) Publish(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid publish payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	err := h.publisher.PublishArticle(c.Request.Context(), req.ArticleID, req.Version)
	if err != nil {
		slog.Error("error publishing article", "error", err, "article_id", req.ArticleID, "version", req.Version)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"published": true})
}
