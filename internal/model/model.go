package model

import "time"

const (
	PlanBasic     = "basic"
	PlanPublished = "published"
	PlanPremium   = "premium"
)

const (
	VersionOriginal = "original"
	VersionRevised  = "revised"
)

const ArticleTypeFeatured = "featured"

type SubmissionInputs struct {
	FullName    string `json:"full_name"`
	Pronouns    string `json:"pronouns"`
	Subject     string `json:"subject"`
	Story       string `json:"story"`
	ArticleType string `json:"article_type"`
}

type Submission struct {
	ID        int64
	Email     string
	Inputs    SubmissionInputs
	Processed bool
	CreatedAt time.Time
}

type RevisedArticle struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

type Article struct {
	ID            int64
	SubmissionID  int64
	Title         string
	Content       []string
	Plan          string
	Author        string
	ImageURL      string
	ModelUsed     string
	PromptVersion string
	Revised       *RevisedArticle
	Published     bool
	PublishedAt   *time.Time
	CreatedAt     time.Time
}

func ValidPlan(plan string) bool {
	switch plan {
	case PlanBasic, PlanPublished, PlanPremium:
		return true
	}
	return false
}
