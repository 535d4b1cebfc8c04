package handler

import (
	"net/http"

	"storydesk/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps a typed error onto its HTTP status with a generic message,
// keeping upstream details out of responses.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)

	var msg string
	switch status {
	case http.StatusNotFound:
		msg = "Not found"
	case http.StatusConflict:
		msg = "Already processed"
	case http.StatusBadRequest:
		msg = "Invalid request"
	case http.StatusBadGateway:
		msg = "Upstream service error"
	default:
		msg = "Server error"
	}

	c.JSON(status, gin.H{"error": msg})
}
