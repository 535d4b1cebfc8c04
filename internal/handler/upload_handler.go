package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"storydesk/pkg/slug"

	"github.com/gin-gonic/gin"
)

const maxImageBytes = 10 << 20 // 10 MiB

type ImageUploader interface {
	UploadImage(ctx context.Context, body io.Reader, filename, contentType string) (string, error)
}

type ImageSetter interface {
	SetImage(id int64, url string) error
}

type UploadHandler struct {
	uploader ImageUploader
	articles ImageSetter
}

func NewUploadHandler(uploader ImageUploader, articles ImageSetter) *UploadHandler {
	return &UploadHandler{uploader: uploader, articles: articles}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	id, ok := slug.ParseID(c.Param("slug"))
	if !ok {
		slog.Warn("invalid article slug", "slug", c.Param("slug"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article slug"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		slog.Warn("missing image file", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("error opening uploaded image", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadImage(
		c.Request.Context(),
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		slog.Error("error uploading image", "error", err, "article_id", id)
		respondError(c, err)
		return
	}

	if err := h.articles.SetImage(id, url); err != nil {
		slog.Error("error saving image url", "error", err, "article_id", id)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{ImageURL: url})
}
