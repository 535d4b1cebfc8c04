package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"storydesk/pkg/payment"

	"github.com/gin-gonic/gin"
)

type EventVerifier interface {
	VerifyCheckoutEvent(payload []byte, sigHeader string) (*payment.CheckoutCompleted, error)
}

type Pipeline interface {
	ProcessPaid(ctx context.Context, submissionID int64, plan string) (int64, error)
}

type WebhookHandler struct {
	verifier EventVerifier
	pipeline Pipeline
}

func NewWebhookHandler(verifier EventVerifier, pipeline Pipeline) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, pipeline: pipeline}
}

// HandleCheckoutEvent consumes the signed payment webhook. The raw body is
// required for signature verification, so this route must not use a JSON
// body middleware.
func (h *WebhookHandler) HandleCheckoutEvent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.Error("error reading webhook body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	event, err := h.verifier.VerifyCheckoutEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		slog.Warn("webhook rejected", "error", err)
		respondError(c, err)
		return
	}

	articleID, err := h.pipeline.ProcessPaid(c.Request.Context(), event.SubmissionID, event.Plan)
	if err != nil {
		slog.Error("error processing paid submission", "error", err, "submission_id", event.SubmissionID, "plan", event.Plan)
		respondError(c, err)
		return
	}

	slog.Info("submission processed", "submission_id", event.SubmissionID, "article_id", articleID, "plan", event.Plan)
	c.JSON(http.StatusOK, gin.H{"article_id": articleID})
}
