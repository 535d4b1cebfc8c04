package handler

type SubmissionRequest struct {
	Email       string `json:"email" binding:"required,email"`
	FullName    string `json:"full_name" binding:"required"`
	Pronouns    string `json:"pronouns"`
	Subject     string `json:"subject" binding:"required"`
	Story       string `json:"story" binding:"required"`
	ArticleType string `json:"article_type"`
}

type SubmissionResponse struct {
	SubmissionID int64 `json:"submission_id"`
}

type CheckoutRequest struct {
	SubmissionID int64  `json:"submission_id" binding:"required"`
	Plan         string `json:"plan" binding:"required"`
}

type CheckoutResponse struct {
	SessionID string `json:"session_id"`
}

type StatusResponse struct {
	Status    string `json:"status"`
	ArticleID int64  `json:"article_id,omitempty"`
	Slug      string `json:"slug,omitempty"`
}

type RevisedResponse struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

type ArticleResponse struct {
	ID          int64            `json:"id"`
	Slug        string           `json:"slug"`
	Title       string           `json:"title"`
	Content     []string         `json:"content"`
	Plan        string           `json:"plan"`
	Author      string           `json:"author,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Revised     *RevisedResponse `json:"revised,omitempty"`
	Published   bool             `json:"published"`
	PublishedAt string           `json:"published_at,omitempty"`
	CreatedAt   string           `json:"created_at"`
}

type PublishRequest struct {
	ArticleID int64  `json:"article_id" binding:"required"`
	Version   string `json:"version" binding:"required"`
}

type RevisionRequest struct {
	Notes string `json:"notes" binding:"required"`
}

type UploadResponse struct {
	ImageURL string `json:"image_url"`
}
