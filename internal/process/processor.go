// Package process orchestrates the paid-submission pipeline: claim the
// submission, generate the article, persist it, and schedule the notification
// sequence for the purchased plan.
package process

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storydesk/internal/apperr"
	"storydesk/internal/model"
	"storydesk/pkg/llm"
	"storydesk/pkg/schedule"
	"storydesk/pkg/slug"
)

type SubmissionStore interface {
	Claim(id int64) (*model.Submission, error)
	Release(id int64) error
}

type ArticleStore interface {
	SaveGenerated(a *model.Article) error
	GetByID(id int64) (*model.Article, error)
	SaveRevision(id int64, rev model.RevisedArticle) error
	Publish(id int64) (string, error)
	PublishRevised(id int64) (string, error)
}

type Notifier interface {
	SchedulePlan(ctx context.Context, plan string, meta schedule.ArticleMeta) error
	Enqueue(ctx context.Context, job schedule.Job, delay time.Duration) error
}

type Processor struct {
	submissions SubmissionStore
	articles    ArticleStore
	generator   llm.Generator
	notifier    Notifier
	author      string
}

func NewProcessor(submissions SubmissionStore, articles ArticleStore, generator llm.Generator, notifier Notifier, author string) *Processor {
	return &Processor{
		submissions: submissions,
		articles:    articles,
		generator:   generator,
		notifier:    notifier,
		author:      author,
	}
}

// ProcessPaid runs the post-payment pipeline for a submission. The claim is
// released if generation or persistence fails, so a webhook retry can start
// over with no partial side effects.
func (p *Processor) ProcessPaid(ctx context.Context, submissionID int64, plan string) (int64, error) {
	if !model.ValidPlan(plan) {
		return 0, fmt.Errorf("unknown plan %q: %w", plan, apperr.ErrInvalidInput)
	}

	sub, err := p.submissions.Claim(submissionID)
	if err != nil {
		return 0, err
	}

	generated, err := p.generator.Generate(llm.ArticleInput{
		FullName:    sub.Inputs.FullName,
		Pronouns:    sub.Inputs.Pronouns,
		Subject:     sub.Inputs.Subject,
		Story:       sub.Inputs.Story,
		ArticleType: sub.Inputs.ArticleType,
	})
	if err != nil {
		p.release(submissionID)
		return 0, err
	}

	article := &model.Article{
		SubmissionID:  sub.ID,
		Title:         generated.Title,
		Content:       generated.Content,
		Plan:          plan,
		Author:        p.author,
		ModelUsed:     generated.ModelUsed,
		PromptVersion: generated.PromptVersion,
	}

	if err := p.articles.SaveGenerated(article); err != nil {
		p.release(submissionID)
		return 0, err
	}

	meta := schedule.ArticleMeta{
		ArticleID: article.ID,
		FirstName: firstName(sub.Inputs.FullName),
		Title:     article.Title,
		Slug:      slug.Make(article.Title, article.ID),
	}

	// The article is persisted; a scheduling failure is logged rather than
	// failing the webhook, which would trigger a retry against an
	// already-claimed submission.
	if err := p.notifier.SchedulePlan(ctx, plan, meta); err != nil {
		slog.Error("error scheduling notifications", "error", err, "article_id", article.ID, "plan", plan)
	}

	return article.ID, nil
}

// ReviseArticle generates and stores the single allowed revision, then
// schedules its notification.
func (p *Processor) ReviseArticle(ctx context.Context, articleID int64, notes string) error {
	article, err := p.articles.GetByID(articleID)
	if err != nil {
		return err
	}

	if article.Revised != nil {
		return fmt.Errorf("article %d already has a revision: %w", articleID, apperr.ErrConflict)
	}

	generated, err := p.generator.Revise(article.Title, article.Content, notes)
	if err != nil {
		return err
	}

	rev := model.RevisedArticle{Title: generated.Title, Content: generated.Content}
	if err := p.articles.SaveRevision(articleID, rev); err != nil {
		return err
	}

	job, err := schedule.NewJob(schedule.KindRevision, schedule.ArticleMeta{
		ArticleID: articleID,
		Slug:      slug.Make(article.Title, articleID),
	})
	if err != nil {
		return err
	}

	if err := p.notifier.Enqueue(ctx, job, schedule.RevisionDelay); err != nil {
		slog.Error("error scheduling revision email", "error", err, "article_id", articleID)
	}

	return nil
}

// PublishArticle publishes either the original or the revised content and
// dispatches the published notification.
func (p *Processor) PublishArticle(ctx context.Context, articleID int64, version string) error {
	var (
		title string
		err   error
	)

	switch version {
	case model.VersionOriginal:
		title, err = p.articles.Publish(articleID)
	case model.VersionRevised:
		title, err = p.articles.PublishRevised(articleID)
	default:
		return fmt.Errorf("unknown publish version %q: %w", version, apperr.ErrInvalidInput)
	}

	if err != nil {
		return err
	}

	job, err := schedule.NewJob(schedule.KindPublished, schedule.ArticleMeta{
		ArticleID: articleID,
		Title:     title,
		Slug:      slug.Make(title, articleID),
	})
	if err != nil {
		return err
	}

	if err := p.notifier.Enqueue(ctx, job, 0); err != nil {
		slog.Error("error scheduling published email", "error", err, "article_id", articleID)
	}

	return nil
}

func (p *Processor) release(submissionID int64) {
	if err := p.submissions.Release(submissionID); err != nil {
		slog.Error("error releasing submission claim", "error", err, "submission_id", submissionID)
	}
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
