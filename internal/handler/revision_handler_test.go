package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storydesk/internal/apperr"
	"storydesk/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeReviser struct {
	articleID int64
	notes     string
	err       error
}

func (f *fakeReviser) ReviseArticle(ctx context.Context, articleID int64, notes string) error {
	f.articleID = articleID
	f.notes = notes
	return f.err
}

func newRevisionRouter(store ArticleStore, reviser Reviser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRevisionHandler(store, reviser)
	r.POST("/revision/:slug", h.SubmitRevision)
	r.GET("/revision/:slug", h.GetRevision)
	return r
}

func TestSubmitRevision_Accepted(t *testing.T) {
	reviser := &fakeReviser{}
	r := newRevisionRouter(&fakeArticles{}, reviser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/revision/a-quiet-triumph-7", strings.NewReader(`{"notes": "Shorter intro please"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, int64(7), reviser.articleID)
	assert.Equal(t, "Shorter intro please", reviser.notes)
}

func TestSubmitRevision_AlreadyRevised(t *testing.T) {
	reviser := &fakeReviser{err: apperr.ErrConflict}
	r := newRevisionRouter(&fakeArticles{}, reviser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/revision/a-quiet-triumph-7", strings.NewReader(`{"notes": "Again"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitRevision_MissingNotes(t *testing.T) {
	reviser := &fakeReviser{}
	r := newRevisionRouter(&fakeArticles{}, reviser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/revision/a-quiet-triumph-7", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), reviser.articleID)
}

func TestSubmitRevision_BadSlug(t *testing.T) {
	reviser := &fakeReviser{}
	r := newRevisionRouter(&fakeArticles{}, reviser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/revision/not-a-slug-", strings.NewReader(`{"notes": "x"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRevision_Found(t *testing.T) {
	article := testArticle()
	article.Revised = &model.RevisedArticle{
		Title:   "A Quieter Triumph",
		Content: []string{"Revised paragraph."},
	}
	r := newRevisionRouter(&fakeArticles{article: article}, &fakeReviser{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/revision/a-quiet-triumph-7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "A Quieter Triumph", res.Revised.Title)
	assert.Equal(t, 1, len(res.Revised.Content))
}

func TestGetRevision_NoneYet(t *testing.T) {
	r := newRevisionRouter(&fakeArticles{article: testArticle()}, &fakeReviser{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/revision/a-quiet-triumph-7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
