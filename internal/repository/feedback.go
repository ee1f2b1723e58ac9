package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"peerreview_service/internal/domain"
)

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *domain.FeedbackResult) error {
	query := `
		INSERT INTO feedback_results (id, submission_id, summary, hints, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	hints, err := json.Marshal(feedback.Hints)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		id,
		feedback.SubmissionID,
		feedback.Summary,
		hints,
		now,
	)
	if err != nil {
		return err
	}

	feedback.ID = id
	feedback.CreatedAt = now
	return nil
}

func (r *FeedbackRepository) GetBySubmission(ctx context.Context, submissionID uuid.UUID) (*domain.FeedbackResult, error) {
	query := `
		SELECT id, submission_id, summary, hints, created_at
		FROM feedback_results
		WHERE submission_id = $1
	`

	var feedback domain.FeedbackResult
	var hints []byte
	err := r.db.QueryRowContext(ctx, query, submissionID).Scan(
		&feedback.ID,
		&feedback.SubmissionID,
		&feedback.Summary,
		&hints,
		&feedback.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(hints, &feedback.Hints); err != nil {
		return nil, err
	}

	return &feedback, nil
}
