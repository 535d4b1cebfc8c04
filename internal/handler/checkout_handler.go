package handler

import (
	"log/slog"
	"net/http"

	"storydesk/internal/model"

	"github.com/gin-gonic/gin"
)

type CheckoutGateway interface {
	CreateCheckoutSession(submissionID int64, plan string) (string, error)
}

type CheckoutHandler struct {
	gateway CheckoutGateway
}

func NewCheckoutHandler(gateway CheckoutGateway) *CheckoutHandler {
	return &CheckoutHandler{gateway: gateway}
}

func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid checkout payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !model.ValidPlan(req.Plan) {
		slog.Warn("checkout with unknown plan", "plan", req.Plan)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sessionID, err := h.gateway.CreateCheckoutSession(req.SubmissionID, req.Plan)
	if err != nil {
		slog.Error("error creating checkout session", "error", err, "submission_id", req.SubmissionID)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckoutResponse{SessionID: sessionID})
}
