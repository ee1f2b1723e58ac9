package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peerreview_service/internal/domain"
)

func TestReviewRepo_CloseAssignment_Distributes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepository(db)
	assignmentID := uuid.New()
	subA := uuid.New()
	subB := uuid.New()
	authorA := uuid.New()
	authorB := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT closed FROM assignments").
		WithArgs(assignmentID).
		WillReturnRows(sqlmock.NewRows([]string{"closed"}).AddRow(false))
	mock.ExpectQuery("SELECT id, assignment_id, creator_id, artifact_key, created_at").
		WithArgs(assignmentID).
		WillReturnRows(sqlmock.NewRows(submissionColumns).
			AddRow(subA.String(), assignmentID.String(), authorA.String(), "a.txt", time.Now()).
			AddRow(subB.String(), assignmentID.String(), authorB.String(), "b.txt", time.Now()))
	// Map iteration order is not fixed, so both inserts accept any row.
	mock.ExpectExec("INSERT INTO review_assignments").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO review_assignments").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE assignments SET closed = TRUE").
		WithArgs(assignmentID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var got []*domain.Submission
	assign := func(subs []*domain.Submission) (map[uuid.UUID]uuid.UUID, error) {
		got = subs
		return map[uuid.UUID]uuid.UUID{subA: authorB, subB: authorA}, nil
	}

	mapping, alreadyClosed, err := repo.CloseAssignment(context.Background(), assignmentID, assign)
	require.NoError(t, err)
	assert.False(t, alreadyClosed)
	assert.Equal(t, authorB, mapping[subA])
	assert.Equal(t, authorA, mapping[subB])

	require.Len(t, got, 2)
	assert.Equal(t, subA, got[0].ID)
	assert.Equal(t, subB, got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_CloseAssignment_AlreadyClosed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepository(db)
	assignmentID := uuid.New()
	submissionID := uuid.New()
	reviewerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT closed FROM assignments").
		WithArgs(assignmentID).
		WillReturnRows(sqlmock.NewRows([]string{"closed"}).AddRow(true))
	mock.ExpectQuery("SELECT ra.submission_id, ra.reviewer_id").
		WithArgs(assignmentID).
		WillReturnRows(sqlmock.NewRows([]string{"submission_id", "reviewer_id"}).
			AddRow(submissionID.String(), reviewerID.String()))
	mock.ExpectCommit()

	assign := func([]*domain.Submission) (map[uuid.UUID]uuid.UUID, error) {
		t.Fatal("distribution must not run for a closed assignment")
		return nil, nil
	}

	mapping, alreadyClosed, err := repo.CloseAssignment(context.Background(), assignmentID, assign)
	require.NoError(t, err)
	assert.True(t, alreadyClosed)
	assert.Equal(t, reviewerID, mapping[submissionID])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_CloseAssignment_AssignErrorLeavesAssignmentOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepository(db)
	assignmentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT closed FROM assignments").
		WithArgs(assignmentID).
		WillReturnRows(sqlmock.NewRows([]string{"closed"}).AddRow(false))
	mock.ExpectQuery("SELECT id, assignment_id, creator_id, artifact_key, created_at").
		WithArgs(assignmentID).
		WillReturnRows(sqlmock.NewRows(submissionColumns).
			AddRow(uuid.New().String(), assignmentID.String(), uuid.New().String(), "a.txt", time.Now()))
	mock.ExpectRollback()

	wantErr := errors.New("not enough submissions")
	assign := func([]*domain.Submission) (map[uuid.UUID]uuid.UUID, error) {
		return nil, wantErr
	}

	_, _, err = repo.CloseAssignment(context.Background(), assignmentID, assign)
	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_CloseAssignment_UnknownAssignment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepository(db)
	assignmentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT closed FROM assignments").
		WithArgs(assignmentID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, _, err = repo.CloseAssignment(context.Background(), assignmentID, func([]*domain.Submission) (map[uuid.UUID]uuid.UUID, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
