package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"storydesk/internal/apperr"
	"storydesk/internal/model"
)

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Save(email string, inputs model.SubmissionInputs) (int64, error) {
	raw, err := json.Marshal(inputs)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRow(`
		INSERT INTO submissions(email, inputs)
		VALUES($1, $2)
		RETURNING submission_id
	`, email, raw).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save submission: %w", err)
	}

	return id, nil
}

func (r *SubmissionRepository) Get(id int64) (*model.Submission, error) {
	var (
		s   model.Submission
		raw []byte
	)
	err := r.db.QueryRow(`
		SELECT submission_id, email, inputs, processed, created_at
		FROM submissions
		WHERE submission_id = $1
	`, id).Scan(&s.ID, &s.Email, &raw, &s.Processed, &s.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("submission %d: %w", id, apperr.ErrNotFound)
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.Inputs); err != nil {
		return nil, fmt.Errorf("decode submission %d inputs: %w", id, err)
	}

	return &s, nil
}

// Claim atomically flips the processed flag. Zero rows affected is the
// duplicate signal: a concurrent webhook retry already claimed this
// submission (Conflict) or it never existed (NotFound).
func (r *SubmissionRepository) Claim(id int64) (*model.Submission, error) {
	var (
		s   model.Submission
		raw []byte
	)
	err := r.db.QueryRow(`
		UPDATE submissions
		SET processed = true
		WHERE submission_id = $1 AND processed = false
		RETURNING submission_id, email, inputs
	`, id).Scan(&s.ID, &s.Email, &raw)

	if err == sql.ErrNoRows {
		var exists bool
		if err := r.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM submissions WHERE submission_id = $1)
		`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("submission %d already processed: %w", id, apperr.ErrConflict)
		}
		return nil, fmt.Errorf("submission %d: %w", id, apperr.ErrNotFound)
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.Inputs); err != nil {
		return nil, fmt.Errorf("decode submission %d inputs: %w", id, err)
	}

	s.Processed = true
	return &s, nil
}

// Release undoes a claim when generation fails after it, so a webhook retry
// can reprocess the submission.
func (r *SubmissionRepository) Release(id int64) error {
	_, err := r.db.Exec(`
		UPDATE submissions SET processed = false WHERE submission_id = $1
	`, id)
	return err
}
