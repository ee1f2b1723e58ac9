package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"peerreview_service/internal/domain"
	"peerreview_service/pkg/logger"
)

var ErrEmptyArtifact = errors.New("empty artifact")

const TopicFeedbackGenerated = "feedback-generated"

type SubmissionServiceInterface interface {
	Handin(ctx context.Context, assignmentID, creatorID uuid.UUID, artifactText string) (*domain.Submission, error)
	GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
}

type submissionService struct {
	submissionRepo SubmissionRepository
	feedbackRepo   FeedbackRepository
	artifacts      ArtifactStore
	generator      FeedbackGenerator
	cache          Cache
	producer       EventPublisher
	log            *logger.Logger
}

func NewSubmissionService(
	submissionRepo SubmissionRepository,
	feedbackRepo FeedbackRepository,
	artifacts ArtifactStore,
	generator FeedbackGenerator,
	cache Cache,
	producer EventPublisher,
	log *logger.Logger,
) SubmissionServiceInterface {
	return &submissionService{
		submissionRepo: submissionRepo,
		feedbackRepo:   feedbackRepo,
		artifacts:      artifacts,
		generator:      generator,
		cache:          cache,
		producer:       producer,
		log:            log,
	}
}

// Handin accepts a new artifact for (assignmentID, creatorID). Any
// prior submission for that pair is retired wholesale: its row and
// feedback go inside the replacement transaction, so a failure at any
// step leaves the old submission authoritative. The new artifact blob
// is written before the row commits and removed again if the commit
// does not happen. Automated feedback then runs best-effort: the
// handin stands even when no critique could be generated.
func (s *submissionService) Handin(ctx context.Context, assignmentID, creatorID uuid.UUID, artifactText string) (*domain.Submission, error) {
	if artifactText == "" {
		return nil, ErrEmptyArtifact
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	sub := &domain.Submission{
		ID:           id,
		AssignmentID: assignmentID,
		CreatorID:    creatorID,
		ArtifactKey:  artifactKey(id),
	}

	if err := s.artifacts.Put(ctx, sub.ArtifactKey, artifactText); err != nil {
		return nil, err
	}

	prior, err := s.submissionRepo.Replace(ctx, sub)
	if err != nil {
		// The blob was keyed by a submission id that never
		// committed; nothing references it.
		if delErr := s.artifacts.Delete(ctx, sub.ArtifactKey); delErr != nil {
			s.log.Warnf("failed to clean up artifact %s after aborted handin: %v", sub.ArtifactKey, delErr)
		}
		return nil, err
	}

	if prior != nil {
		// The database already forgot the old submission; an
		// orphaned blob is harmless, so deletion failures are
		// logged and not surfaced.
		if err := s.artifacts.Delete(ctx, prior.ArtifactKey); err != nil {
			s.log.Warnf("failed to delete superseded artifact %s: %v", prior.ArtifactKey, err)
		}
		s.cache.Delete(ctx, feedbackCacheKey(prior.ID))
	}

	s.generateFeedback(ctx, sub, artifactText)
	return sub, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return s.submissionRepo.GetByID(ctx, id)
}

func (s *submissionService) generateFeedback(ctx context.Context, sub *domain.Submission, artifactText string) {
	feedback, err := s.generator.Generate(ctx, artifactText, sub.ID)
	if err != nil {
		s.log.Warnf("no automated feedback for submission %s: %v", sub.ID, err)
		return
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		s.log.Errorf("failed to store feedback for submission %s: %v", sub.ID, err)
		return
	}

	event := map[string]interface{}{
		"submission_id": sub.ID,
		"assignment_id": sub.AssignmentID,
		"creator_id":    sub.CreatorID,
	}
	if err := s.producer.Send(ctx, TopicFeedbackGenerated, event); err != nil {
		s.log.Warnf("failed to publish feedback event for submission %s: %v", sub.ID, err)
	}
}

func artifactKey(submissionID uuid.UUID) string {
	return submissionID.String() + ".txt"
}
