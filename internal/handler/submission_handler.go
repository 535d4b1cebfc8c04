package handler

import (
	"log/slog"
	"net/http"

	"storydesk/internal/model"

	"github.com/gin-gonic/gin"
)

type SubmissionStore interface {
	Save(email string, inputs model.SubmissionInputs) (int64, error)
}

type SubmissionHandler struct {
	store SubmissionStore
}

func NewSubmissionHandler(store SubmissionStore) *SubmissionHandler {
	return &SubmissionHandler{store: store}
}

func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid submission payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	id, err := h.store.Save(req.Email, model.SubmissionInputs{
		FullName:    req.FullName,
		Pronouns:    req.Pronouns,
		Subject:     req.Subject,
		Story:       req.Story,
		ArticleType: req.ArticleType,
	})
	if err != nil {
		slog.Error("error saving submission", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmissionResponse{SubmissionID: id})
}
