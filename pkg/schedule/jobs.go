// Package schedule implements the delayed lifecycle-notification queue. Jobs
// are persisted in a Redis sorted set scored by fire time, so they survive
// process restarts; a worker claims due jobs and dispatches emails.
package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"storydesk/internal/model"

	"github.com/google/uuid"
)

type Kind string

const (
	KindConfirmation    Kind = "confirmation"
	KindEditorial       Kind = "editorial"
	KindEditorialUpdate Kind = "editorial_update"
	KindReview          Kind = "review"
	KindReviewReminder  Kind = "review_reminder"
	KindRevision        Kind = "revision"
	KindPublished       Kind = "published"
)

// Job is the envelope stored in the queue. Payload carries a kind-specific
// struct; decode it with the matching helper.
type Job struct {
	ID      string          `json:"id"`
	Kind    Kind            `json:"kind"`
	RunAt   time.Time       `json:"run_at"`
	Payload json.RawMessage `json:"payload"`
}

type ConfirmationPayload struct {
	ArticleID int64  `json:"article_id"`
	FirstName string `json:"first_name"`
}

type EditorialPayload struct {
	ArticleID int64  `json:"article_id"`
	FirstName string `json:"first_name"`
	Title     string `json:"title"`
}

type ReviewPayload struct {
	ArticleID int64  `json:"article_id"`
	FirstName string `json:"first_name"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
}

type RevisionPayload struct {
	ArticleID int64  `json:"article_id"`
	Slug      string `json:"slug"`
}

type PublishedPayload struct {
	ArticleID int64  `json:"article_id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
}

// ArticleMeta is everything the schedule needs to build the jobs for one
// article's lifecycle.
type ArticleMeta struct {
	ArticleID int64
	FirstName string
	Title     string
	Slug      string
}

type JobSpec struct {
	Kind  Kind
	Delay time.Duration
}

var planTable = map[string][]JobSpec{
	model.PlanBasic: {
		{Kind: KindConfirmation, Delay: 0},
		{Kind: KindEditorial, Delay: 1 * time.Hour},
		{Kind: KindReview, Delay: 24 * time.Hour},
	},
	model.PlanPublished: {
		{Kind: KindConfirmation, Delay: 0},
		{Kind: KindEditorial, Delay: 1 * time.Hour},
		{Kind: KindEditorialUpdate, Delay: 12 * time.Hour},
		{Kind: KindReview, Delay: 24 * time.Hour},
	},
	model.PlanPremium: {
		{Kind: KindConfirmation, Delay: 0},
		{Kind: KindEditorial, Delay: 1 * time.Hour},
		{Kind: KindEditorialUpdate, Delay: 12 * time.Hour},
		{Kind: KindReview, Delay: 24 * time.Hour},
		{Kind: KindReviewReminder, Delay: 48 * time.Hour},
	},
}

// RevisionDelay is how long after a revision is stored its notification fires.
const RevisionDelay = 1 * time.Hour

// PlanSchedule returns the job sequence for a plan tier. Unknown plans fall
// back to the basic schedule.
func PlanSchedule(plan string) []JobSpec {
	specs, ok := planTable[plan]
	if !ok {
		return planTable[model.PlanBasic]
	}
	return specs
}

func NewJob(kind Kind, meta ArticleMeta) (Job, error) {
	var payload any

	switch kind {
	case KindConfirmation:
		payload = ConfirmationPayload{ArticleID: meta.ArticleID, FirstName: meta.FirstName}
	case KindEditorial, KindEditorialUpdate:
		payload = EditorialPayload{ArticleID: meta.ArticleID, FirstName: meta.FirstName, Title: meta.Title}
	case KindReview, KindReviewReminder:
		payload = ReviewPayload{ArticleID: meta.ArticleID, FirstName: meta.FirstName, Title: meta.Title, Slug: meta.Slug}
	case KindRevision:
		payload = RevisionPayload{ArticleID: meta.ArticleID, Slug: meta.Slug}
	case KindPublished:
		payload = PublishedPayload{ArticleID: meta.ArticleID, Title: meta.Title, Slug: meta.Slug}
	default:
		return Job{}, fmt.Errorf("unknown job kind %q", kind)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Job{}, err
	}

	return Job{
		ID:      uuid.NewString(),
		Kind:    kind,
		Payload: raw,
	}, nil
}

func DecodePayload[T any](job Job) (T, error) {
	var payload T
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return payload, fmt.Errorf("decode %s payload: %w", job.Kind, err)
	}
	return payload, nil
}
