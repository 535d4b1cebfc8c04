package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storydesk/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeSubmissions struct {
	id     int64
	email  string
	inputs model.SubmissionInputs
	err    error
}

func (f *fakeSubmissions) Save(email string, inputs model.SubmissionInputs) (int64, error) {
	f.email = email
	f.inputs = inputs
	if f.err != nil {
		return 0, f.err
	}
	return f.id, nil
}

func newSubmissionRouter(store SubmissionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSubmissionHandler(store)
	r.POST("/submission", h.CreateSubmission)
	return r
}

func TestCreateSubmission_Saved(t *testing.T) {
	store := &fakeSubmissions{id: 11}
	r := newSubmissionRouter(store)

	body := `{
		"email": "maria@example.com",
		"full_name": "Maria Santos",
		"pronouns": "she/her",
		"subject": "Community garden",
		"story": "It started with one raised bed.",
		"article_type": "featured"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/submission", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "maria@example.com", store.email)
	assert.Equal(t, "Maria Santos", store.inputs.FullName)
	assert.Equal(t, model.ArticleTypeFeatured, store.inputs.ArticleType)

	var res SubmissionResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, int64(11), res.SubmissionID)
}

func TestCreateSubmission_InvalidEmail(t *testing.T) {
	store := &fakeSubmissions{id: 11}
	r := newSubmissionRouter(store)

	body := `{"email": "not-an-email", "full_name": "Maria", "subject": "s", "story": "t"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/submission", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "", store.email)
}

func TestCreateSubmission_MissingStory(t *testing.T) {
	store := &fakeSubmissions{id: 11}
	r := newSubmissionRouter(store)

	body := `{"email": "maria@example.com", "full_name": "Maria", "subject": "s"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/submission", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSubmission_DBError(t *testing.T) {
	store := &fakeSubmissions{err: errors.New("DB down")}
	r := newSubmissionRouter(store)

	body := `{"email": "maria@example.com", "full_name": "Maria", "subject": "s", "story": "t"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/submission", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
