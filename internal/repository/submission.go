package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"peerreview_service/internal/domain"
)

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Replace retires any live submission for sub's (assignment, creator)
// pair and commits sub in its place, as one transaction. The prior
// submission's feedback row goes with it. Concurrent handins for the
// same pair serialize on the locked submission row, backed by the
// UNIQUE (assignment_id, creator_id) constraint. Returns the retired
// submission, or nil on a first handin. Handins against a closed
// assignment fail with ErrAssignmentClosed.
func (r *SubmissionRepository) Replace(ctx context.Context, sub *domain.Submission) (*domain.Submission, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// FOR SHARE keeps closure out while letting other students'
	// handins through.
	var closed bool
	err = tx.QueryRowContext(ctx,
		`SELECT closed FROM assignments WHERE id = $1 FOR SHARE`,
		sub.AssignmentID,
	).Scan(&closed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if closed {
		return nil, ErrAssignmentClosed
	}

	var old domain.Submission
	var prior *domain.Submission
	err = tx.QueryRowContext(ctx, `
		SELECT id, assignment_id, creator_id, artifact_key, created_at
		FROM submissions
		WHERE assignment_id = $1 AND creator_id = $2
		FOR UPDATE`,
		sub.AssignmentID, sub.CreatorID,
	).Scan(&old.ID, &old.AssignmentID, &old.CreatorID, &old.ArtifactKey, &old.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// first handin for this pair
	case err != nil:
		return nil, err
	default:
		prior = &old
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM feedback_results WHERE submission_id = $1`, old.ID,
		); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM submissions WHERE id = $1`, old.ID,
		); err != nil {
			return nil, err
		}
	}

	sub.CreatedAt = time.Now()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO submissions (id, assignment_id, creator_id, artifact_key, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		sub.ID, sub.AssignmentID, sub.CreatorID, sub.ArtifactKey, sub.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return prior, nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query := `
		SELECT id, assignment_id, creator_id, artifact_key, created_at
		FROM submissions
		WHERE id = $1
	`

	var submission domain.Submission
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.AssignmentID,
		&submission.CreatorID,
		&submission.ArtifactKey,
		&submission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &submission, nil
}

func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	query := `
		SELECT id, assignment_id, creator_id, artifact_key, created_at
		FROM submissions
		WHERE assignment_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var submissions []*domain.Submission
	for rows.Next() {
		var submission domain.Submission
		err := rows.Scan(
			&submission.ID,
			&submission.AssignmentID,
			&submission.CreatorID,
			&submission.ArtifactKey,
			&submission.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, &submission)
	}

	return submissions, rows.Err()
}
