package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"peerreview_service/internal/domain"
	"peerreview_service/pkg/logger"
)

const feedbackCacheTTL = 5 * time.Minute

type FeedbackServiceInterface interface {
	GetFeedback(ctx context.Context, submissionID uuid.UUID) (*domain.FeedbackResult, error)
}

type feedbackService struct {
	feedbackRepo FeedbackRepository
	cache        Cache
	log          *logger.Logger
}

func NewFeedbackService(feedbackRepo FeedbackRepository, cache Cache, log *logger.Logger) FeedbackServiceInterface {
	return &feedbackService{feedbackRepo: feedbackRepo, cache: cache, log: log}
}

// GetFeedback returns the stored critique for a submission. Results
// are immutable once accepted, so a short read-through cache is safe;
// the replacement policy invalidates the key when a submission is
// superseded.
func (s *feedbackService) GetFeedback(ctx context.Context, submissionID uuid.UUID) (*domain.FeedbackResult, error) {
	key := feedbackCacheKey(submissionID)
	if data, ok := s.cache.Get(ctx, key); ok {
		var cached domain.FeedbackResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		s.cache.Delete(ctx, key)
	}

	feedback, err := s.feedbackRepo.GetBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(feedback); err == nil {
		s.cache.Set(ctx, key, data, feedbackCacheTTL)
	}
	return feedback, nil
}

func feedbackCacheKey(submissionID uuid.UUID) string {
	return fmt.Sprintf("feedback:%s", submissionID)
}
