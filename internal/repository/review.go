package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"peerreview_service/internal/domain"
)

// AssignFunc computes the reviewer for each live submission. Returning
// an error aborts the closure and leaves the assignment open.
type AssignFunc func(subs []*domain.Submission) (map[uuid.UUID]uuid.UUID, error)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CloseAssignment flips the assignment to closed and persists the
// reviewer mapping produced by assign, atomically: either the
// assignment ends up closed with every review row written, or nothing
// changes. The assignment row is locked FOR UPDATE so concurrent close
// requests serialize; the loser observes closed = true and gets the
// already-committed mapping back with alreadyClosed set.
func (r *ReviewRepository) CloseAssignment(ctx context.Context, assignmentID uuid.UUID, assign AssignFunc) (reviewers map[uuid.UUID]uuid.UUID, alreadyClosed bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback() }()

	var closed bool
	err = tx.QueryRowContext(ctx,
		`SELECT closed FROM assignments WHERE id = $1 FOR UPDATE`,
		assignmentID,
	).Scan(&closed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	if closed {
		existing, err := listReviewersTx(ctx, tx, assignmentID)
		if err != nil {
			return nil, false, err
		}
		return existing, true, tx.Commit()
	}

	subs, err := listSubmissionsTx(ctx, tx, assignmentID)
	if err != nil {
		return nil, false, err
	}

	mapping, err := assign(subs)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	for submissionID, reviewerID := range mapping {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO review_assignments (submission_id, reviewer_id, created_at)
			VALUES ($1, $2, $3)`,
			submissionID, reviewerID, now,
		); err != nil {
			return nil, false, err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE assignments SET closed = TRUE, edited_at = $2 WHERE id = $1`,
		assignmentID, now,
	); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return mapping, false, nil
}

func listSubmissionsTx(ctx context.Context, tx *sql.Tx, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, assignment_id, creator_id, artifact_key, created_at
		FROM submissions
		WHERE assignment_id = $1
		ORDER BY created_at, id`,
		assignmentID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var subs []*domain.Submission
	for rows.Next() {
		var sub domain.Submission
		if err := rows.Scan(&sub.ID, &sub.AssignmentID, &sub.CreatorID, &sub.ArtifactKey, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

func listReviewersTx(ctx context.Context, tx *sql.Tx, assignmentID uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT ra.submission_id, ra.reviewer_id
		FROM review_assignments ra
		JOIN submissions s ON s.id = ra.submission_id
		WHERE s.assignment_id = $1`,
		assignmentID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	mapping := map[uuid.UUID]uuid.UUID{}
	for rows.Next() {
		var submissionID, reviewerID uuid.UUID
		if err := rows.Scan(&submissionID, &reviewerID); err != nil {
			return nil, err
		}
		mapping[submissionID] = reviewerID
	}
	return mapping, rows.Err()
}
