package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storydesk/pkg/mailer"
	"storydesk/pkg/schedule"
)

type emailStore interface {
	GetEmailByArticleID(articleID int64) (string, error)
}

type sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type jobSource interface {
	ClaimDue(ctx context.Context, now time.Time, limit int64) ([]schedule.Job, error)
}

type worker struct {
	scheduler   jobSource
	articles    emailStore
	mailer      sender
	frontendURL string
}

func (w *worker) runOnce(ctx context.Context) {
	jobs, err := w.scheduler.ClaimDue(ctx, time.Now(), claimLimit)
	if err != nil {
		slog.Error("error claiming due jobs", "error", err)
		return
	}

	for _, job := range jobs {
		if err := w.dispatch(ctx, job); err != nil {
			slog.Error("error dispatching job", "error", err, "job_id", job.ID, "kind", job.Kind)
			continue
		}
		slog.Info("job dispatched", "job_id", job.ID, "kind", job.Kind)
	}
}

// dispatch renders and sends the email for one claimed job. The recipient is
// resolved at fire time so an address change between enqueue and send still
// lands in the right inbox. A failed send is logged and dropped, not requeued.
func (w *worker) dispatch(ctx context.Context, job schedule.Job) error {
	data, articleID, err := w.templateData(job)
	if err != nil {
		return err
	}

	to, err := w.articles.GetEmailByArticleID(articleID)
	if err != nil {
		return fmt.Errorf("resolve recipient for article %d: %w", articleID, err)
	}

	subject, html, err := mailer.Render(string(job.Kind), data)
	if err != nil {
		return err
	}

	return w.mailer.Send(ctx, to, subject, html)
}

func (w *worker) templateData(job schedule.Job) (mailer.TemplateData, int64, error) {
	switch job.Kind {
	case schedule.KindConfirmation:
		p, err := schedule.DecodePayload[schedule.ConfirmationPayload](job)
		if err != nil {
			return mailer.TemplateData{}, 0, err
		}
		return mailer.TemplateData{FirstName: p.FirstName}, p.ArticleID, nil

	case schedule.KindEditorial, schedule.KindEditorialUpdate:
		p, err := schedule.DecodePayload[schedule.EditorialPayload](job)
		if err != nil {
			return mailer.TemplateData{}, 0, err
		}
		return mailer.TemplateData{FirstName: p.FirstName, Title: p.Title}, p.ArticleID, nil

	case schedule.KindReview, schedule.KindReviewReminder:
		p, err := schedule.DecodePayload[schedule.ReviewPayload](job)
		if err != nil {
			return mailer.TemplateData{}, 0, err
		}
		return mailer.TemplateData{
			FirstName: p.FirstName,
			Title:     p.Title,
			Link:      w.frontendURL + "/preview/" + p.Slug,
		}, p.ArticleID, nil

	case schedule.KindRevision:
		p, err := schedule.DecodePayload[schedule.RevisionPayload](job)
		if err != nil {
			return mailer.TemplateData{}, 0, err
		}
		return mailer.TemplateData{
			Link: w.frontendURL + "/revision/" + p.Slug,
		}, p.ArticleID, nil

	case schedule.KindPublished:
		p, err := schedule.DecodePayload[schedule.PublishedPayload](job)
		if err != nil {
			return mailer.TemplateData{}, 0, err
		}
		return mailer.TemplateData{
			Title: p.Title,
			Link:  w.frontendURL + "/" + p.Slug,
		}, p.ArticleID, nil
	}

	return mailer.TemplateData{}, 0, fmt.Errorf("unknown job kind %q", job.Kind)
}
