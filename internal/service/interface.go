package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"peerreview_service/internal/domain"
	"peerreview_service/internal/repository"
)

type SubmissionRepository interface {
	Replace(ctx context.Context, sub *domain.Submission) (*domain.Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.FeedbackResult) error
	GetBySubmission(ctx context.Context, submissionID uuid.UUID) (*domain.FeedbackResult, error)
}

type ReviewRepository interface {
	CloseAssignment(ctx context.Context, assignmentID uuid.UUID, assign repository.AssignFunc) (map[uuid.UUID]uuid.UUID, bool, error)
}

type ArtifactStore interface {
	Put(ctx context.Context, key string, text string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type FeedbackGenerator interface {
	Generate(ctx context.Context, artifactText string, submissionID uuid.UUID) (*domain.FeedbackResult, error)
}

type EventPublisher interface {
	Send(ctx context.Context, topic string, message interface{}) error
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
