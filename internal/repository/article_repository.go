package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"storydesk/internal/apperr"
	"storydesk/internal/model"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) SaveGenerated(a *model.Article) error {
	content, err := json.Marshal(a.Content)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(`
		INSERT INTO articles(submission_id, title, content, plan, author, image_url, model_used, prompt_version)
		VALUES($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		RETURNING article_id
	`, a.SubmissionID, a.Title, content, a.Plan, a.Author, a.ImageURL, a.ModelUsed, a.PromptVersion).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("save article: %w", err)
	}

	return nil
}

func (r *ArticleRepository) GetByID(id int64) (*model.Article, error) {
	var (
		a             model.Article
		content       []byte
		revised       []byte
		author        sql.NullString
		imageURL      sql.NullString
		modelUsed     sql.NullString
		promptVersion sql.NullString
		publishedAt   sql.NullTime
	)
	err := r.db.QueryRow(`
		SELECT article_id, submission_id, title, content, plan, author, image_url,
			model_used, prompt_version, revised, published, published_at, created_at
		FROM articles
		WHERE article_id = $1
	`, id).Scan(&a.ID, &a.SubmissionID, &a.Title, &content, &a.Plan, &author,
		&imageURL, &modelUsed, &promptVersion, &revised, &a.Published, &publishedAt, &a.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("article %d: %w", id, apperr.ErrNotFound)
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(content, &a.Content); err != nil {
		return nil, fmt.Errorf("decode article %d content: %w", id, err)
	}

	if revised != nil {
		a.Revised = &model.RevisedArticle{}
		if err := json.Unmarshal(revised, a.Revised); err != nil {
			return nil, fmt.Errorf("decode article %d revision: %w", id, err)
		}
	}

	a.Author = author.String
	a.ImageURL = imageURL.String
	a.ModelUsed = modelUsed.String
	a.PromptVersion = promptVersion.String
	if publishedAt.Valid {
		a.PublishedAt = &publishedAt.Time
	}

	return &a, nil
}

// GetBySubmissionID backs the status poll: NotFound means generation has not
// completed yet.
func (r *ArticleRepository) GetBySubmissionID(submissionID int64) (*model.Article, error) {
	var id int64
	err := r.db.QueryRow(`
		SELECT article_id FROM articles WHERE submission_id = $1
	`, submissionID).Scan(&id)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("article for submission %d: %w", submissionID, apperr.ErrNotFound)
	}

	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *ArticleRepository) GetEmailByArticleID(articleID int64) (string, error) {
	var email string
	err := r.db.QueryRow(`
		SELECT submissions.email
		FROM submissions
		JOIN articles ON submissions.submission_id = articles.submission_id
		WHERE articles.article_id = $1
	`, articleID).Scan(&email)

	if err == sql.ErrNoRows {
		return "", fmt.Errorf("email for article %d: %w", articleID, apperr.ErrNotFound)
	}

	if err != nil {
		return "", err
	}

	return email, nil
}

// SaveRevision stores the revised body alongside the original. The revised
// column being null is the guard: at most one outstanding revision per article.
func (r *ArticleRepository) SaveRevision(id int64, rev model.RevisedArticle) error {
	raw, err := json.Marshal(rev)
	if err != nil {
		return err
	}

	res, err := r.db.Exec(`
		UPDATE articles SET revised = $1
		WHERE article_id = $2 AND revised IS NULL
	`, raw, id)
	if err != nil {
		return fmt.Errorf("save revision: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.zeroRowsError(id, fmt.Sprintf("article %d already has a revision", id))
	}

	return nil
}

// Publish flips the published flag for the original content and returns the
// published title.
func (r *ArticleRepository) Publish(id int64) (string, error) {
	var title string
	err := r.db.QueryRow(`
		UPDATE articles
		SET published = true, published_at = now()
		WHERE article_id = $1 AND published = false
		RETURNING title
	`, id).Scan(&title)

	if err == sql.ErrNoRows {
		return "", r.zeroRowsError(id, fmt.Sprintf("article %d already published", id))
	}

	if err != nil {
		return "", fmt.Errorf("publish article: %w", err)
	}

	return title, nil
}

// PublishRevised copies the revised title and content into the primary columns
// and publishes, all in one statement.
func (r *ArticleRepository) PublishRevised(id int64) (string, error) {
	var title string
	err := r.db.QueryRow(`
		UPDATE articles
		SET title = revised->>'title',
			content = revised->'content',
			published = true,
			published_at = now()
		WHERE article_id = $1 AND published = false AND revised IS NOT NULL
		RETURNING title
	`, id).Scan(&title)

	if err == sql.ErrNoRows {
		return "", r.zeroRowsError(id, fmt.Sprintf("article %d has no unpublished revision", id))
	}

	if err != nil {
		return "", fmt.Errorf("publish revision: %w", err)
	}

	return title, nil
}

func (r *ArticleRepository) SetImage(id int64, url string) error {
	res, err := r.db.Exec(`
		UPDATE articles SET image_url = $1 WHERE article_id = $2
	`, url, id)
	if err != nil {
		return fmt.Errorf("set article image: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("article %d: %w", id, apperr.ErrNotFound)
	}

	return nil
}

// zeroRowsError disambiguates a conditional update that matched nothing:
// Conflict when the article exists, NotFound when it does not.
func (r *ArticleRepository) zeroRowsError(id int64, conflictMsg string) error {
	var exists bool
	if err := r.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)
	`, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s: %w", conflictMsg, apperr.ErrConflict)
	}
	return fmt.Errorf("article %d: %w", id, apperr.ErrNotFound)
}
