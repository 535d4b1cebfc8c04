package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"storydesk/pkg/schedule"

	"github.com/go-playground/assert/v2"
)

type fakeEmailStore struct {
	email string
	err   error
}

func (f *fakeEmailStore) GetEmailByArticleID(articleID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.email, nil
}

type fakeSender struct {
	to      string
	subject string
	html    string
	err     error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	f.to = to
	f.subject = subject
	f.html = htmlBody
	return f.err
}

type fakeJobs struct {
	jobs []schedule.Job
	err  error
}

func (f *fakeJobs) ClaimDue(ctx context.Context, now time.Time, limit int64) ([]schedule.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

func mustJob(t *testing.T, kind schedule.Kind, meta schedule.ArticleMeta) schedule.Job {
	t.Helper()
	job, err := schedule.NewJob(kind, meta)
	if err != nil {
		t.Fatal(err)
	}
	return job
}

func TestDispatch_ReviewEmail(t *testing.T) {
	store := &fakeEmailStore{email: "maria@example.com"}
	sent := &fakeSender{}
	w := &worker{articles: store, mailer: sent, frontendURL: "https://storydesk.example"}

	job := mustJob(t, schedule.KindReview, schedule.ArticleMeta{
		ArticleID: 7,
		FirstName: "Maria",
		Title:     "A Quiet Triumph",
		Slug:      "a-quiet-triumph-7",
	})

	err := w.dispatch(context.Background(), job)
	assert.Equal(t, nil, err)
	assert.Equal(t, "maria@example.com", sent.to)

	if !strings.Contains(sent.html, "https://storydesk.example/preview/a-quiet-triumph-7") {
		t.Fatalf("review email missing preview link: %s", sent.html)
	}
	if !strings.Contains(sent.html, "A Quiet Triumph") {
		t.Fatal("review email missing article title")
	}
}

func TestDispatch_PublishedEmailLinksArticle(t *testing.T) {
	store := &fakeEmailStore{email: "maria@example.com"}
	sent := &fakeSender{}
	w := &worker{articles: store, mailer: sent, frontendURL: "https://storydesk.example"}

	job := mustJob(t, schedule.KindPublished, schedule.ArticleMeta{
		ArticleID: 7,
		Title:     "A Quiet Triumph",
		Slug:      "a-quiet-triumph-7",
	})

	err := w.dispatch(context.Background(), job)
	assert.Equal(t, nil, err)

	if !strings.Contains(sent.html, "https://storydesk.example/a-quiet-triumph-7") {
		t.Fatalf("published email missing article link: %s", sent.html)
	}
}

func TestDispatch_UnknownKind(t *testing.T) {
	w := &worker{articles: &fakeEmailStore{}, mailer: &fakeSender{}}

	err := w.dispatch(context.Background(), schedule.Job{ID: "x", Kind: "mystery"})
	if err == nil {
		t.Fatal("expected error for unknown job kind")
	}
}

func TestRunOnce_ContinuesPastFailedJob(t *testing.T) {
	bad := schedule.Job{ID: "bad", Kind: "mystery"}
	good := mustJob(t, schedule.KindConfirmation, schedule.ArticleMeta{ArticleID: 7, FirstName: "Maria"})

	store := &fakeEmailStore{email: "maria@example.com"}
	sent := &fakeSender{}
	w := &worker{
		scheduler:   &fakeJobs{jobs: []schedule.Job{bad, good}},
		articles:    store,
		mailer:      sent,
		frontendURL: "https://storydesk.example",
	}

	w.runOnce(context.Background())

	assert.Equal(t, "maria@example.com", sent.to)
}
