package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewAssignment pairs a submission with its peer reviewer.
// Invariant: ReviewerID is never the submission's creator.
type ReviewAssignment struct {
	SubmissionID uuid.UUID
	ReviewerID   uuid.UUID
	CreatedAt    time.Time
}
