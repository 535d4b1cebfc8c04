package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storydesk/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeGateway struct {
	submissionID int64
	plan         string
	sessionID    string
	err          error
}

func (f *fakeGateway) CreateCheckoutSession(submissionID int64, plan string) (string, error) {
	f.submissionID = submissionID
	f.plan = plan
	if f.err != nil {
		return "", f.err
	}
	return f.sessionID, nil
}

func newCheckoutRouter(gateway CheckoutGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCheckoutHandler(gateway)
	r.POST("/checkout", h.CreateCheckout)
	return r
}

func TestCreateCheckout_SessionCreated(t *testing.T) {
	gateway := &fakeGateway{sessionID: "cs_test_123"}
	r := newCheckoutRouter(gateway)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkout", strings.NewReader(`{"submission_id": 42, "plan": "premium"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), gateway.submissionID)
	assert.Equal(t, "premium", gateway.plan)

	var res CheckoutResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "cs_test_123", res.SessionID)
}

func TestCreateCheckout_UnknownPlan(t *testing.T) {
	gateway := &fakeGateway{sessionID: "cs_test_123"}
	r := newCheckoutRouter(gateway)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkout", strings.NewReader(`{"submission_id": 42, "plan": "platinum"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), gateway.submissionID)
}

func TestCreateCheckout_MissingSubmission(t *testing.T) {
	gateway := &fakeGateway{sessionID: "cs_test_123"}
	r := newCheckoutRouter(gateway)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkout", strings.NewReader(`{"plan": "basic"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCheckout_GatewayError(t *testing.T) {
	gateway := &fakeGateway{err: apperr.ErrUpstream}
	r := newCheckoutRouter(gateway)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkout", strings.NewReader(`{"submission_id": 42, "plan": "basic"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
