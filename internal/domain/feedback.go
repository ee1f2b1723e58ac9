package domain

import (
	"time"

	"github.com/google/uuid"
)

// Hint is one machine-generated remark about a set of artifact lines.
// Lines are 1-based, sorted and never empty.
type Hint struct {
	Lines []int  `json:"lines"`
	Text  string `json:"hint"`
}

// HintSet groups hints into the three rubric buckets.
type HintSet struct {
	Critical  []Hint `json:"critical"`
	Structure []Hint `json:"structure"`
	Styling   []Hint `json:"styling"`
}

// FeedbackResult is the structured first-pass critique for a submission.
// It is immutable once accepted and replaced wholesale when the owning
// submission is superseded.
type FeedbackResult struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID
	Summary      string
	Hints        HintSet
	CreatedAt    time.Time
}
