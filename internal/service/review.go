package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/google/uuid"

	"peerreview_service/internal/domain"
	"peerreview_service/pkg/logger"
)

var ErrDistributionImpossible = errors.New("review distribution needs at least two live submissions")

const TopicAssignmentClosed = "assignment-closed"

type ReviewServiceInterface interface {
	CloseAssignment(ctx context.Context, assignmentID uuid.UUID) (map[uuid.UUID]uuid.UUID, error)
}

type reviewService struct {
	reviewRepo ReviewRepository
	producer   EventPublisher
	log        *logger.Logger
}

func NewReviewService(reviewRepo ReviewRepository, producer EventPublisher, log *logger.Logger) ReviewServiceInterface {
	return &reviewService{reviewRepo: reviewRepo, producer: producer, log: log}
}

// CloseAssignment transitions the assignment to closed and distributes
// every live submission to a peer reviewer. Closure and distribution
// are atomic: with fewer than two submissions the operation fails and
// the assignment stays open. Closing an already-closed assignment is a
// no-op that returns the committed mapping.
func (s *reviewService) CloseAssignment(ctx context.Context, assignmentID uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	mapping, alreadyClosed, err := s.reviewRepo.CloseAssignment(ctx, assignmentID, distributeReviews)
	if err != nil {
		return nil, err
	}

	if alreadyClosed {
		s.log.Infof("assignment %s already closed, keeping existing distribution", assignmentID)
		return mapping, nil
	}

	event := map[string]interface{}{
		"assignment_id": assignmentID,
		"pairings":      len(mapping),
	}
	if err := s.producer.Send(ctx, TopicAssignmentClosed, event); err != nil {
		s.log.Warnf("failed to publish close event for assignment %s: %v", assignmentID, err)
	}

	return mapping, nil
}

func distributeReviews(subs []*domain.Submission) (map[uuid.UUID]uuid.UUID, error) {
	n := len(subs)
	if n < 2 {
		return nil, ErrDistributionImpossible
	}
	offset := 1 + rand.Intn(n-1)
	return assignReviewers(subs, offset), nil
}

// assignReviewers maps each submission to the author offset positions
// further along the submission sequence. Authors are unique within an
// assignment, so any offset in [1, n-1] is a derangement by
// construction: no author can land on their own submission.
func assignReviewers(subs []*domain.Submission, offset int) map[uuid.UUID]uuid.UUID {
	n := len(subs)
	mapping := make(map[uuid.UUID]uuid.UUID, n)
	for i, sub := range subs {
		mapping[sub.ID] = subs[(i+offset)%n].CreatorID
	}
	return mapping
}
