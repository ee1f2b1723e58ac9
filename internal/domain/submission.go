package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is the live submission of one student for one assignment.
// At most one exists per (AssignmentID, CreatorID) pair; a new handin
// supersedes and destroys the previous one together with its artifact
// and feedback.
type Submission struct {
	ID           uuid.UUID
	AssignmentID uuid.UUID
	CreatorID    uuid.UUID
	ArtifactKey  string
	CreatedAt    time.Time
}
