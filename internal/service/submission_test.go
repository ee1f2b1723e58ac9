package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"peerreview_service/internal/domain"
	"peerreview_service/internal/service"
	"peerreview_service/internal/service/mocks"
	"peerreview_service/pkg/logger"
)

type submissionFixture struct {
	submissionRepo *mocks.MockSubmissionRepository
	feedbackRepo   *mocks.MockFeedbackRepository
	artifacts      *mocks.MockArtifactStore
	generator      *mocks.MockFeedbackGenerator
	cache          *mocks.MockCache
	producer       *mocks.MockEventPublisher
	svc            service.SubmissionServiceInterface
}

func setupSubmission(t *testing.T) *submissionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &submissionFixture{
		submissionRepo: mocks.NewMockSubmissionRepository(ctrl),
		feedbackRepo:   mocks.NewMockFeedbackRepository(ctrl),
		artifacts:      mocks.NewMockArtifactStore(ctrl),
		generator:      mocks.NewMockFeedbackGenerator(ctrl),
		cache:          mocks.NewMockCache(ctrl),
		producer:       mocks.NewMockEventPublisher(ctrl),
	}
	f.svc = service.NewSubmissionService(
		f.submissionRepo, f.feedbackRepo, f.artifacts,
		f.generator, f.cache, f.producer, logger.New(),
	)
	return f
}

func someFeedback(submissionID uuid.UUID) *domain.FeedbackResult {
	return &domain.FeedbackResult{
		SubmissionID: submissionID,
		Summary:      "looks fine",
		Hints: domain.HintSet{
			Critical:  []domain.Hint{},
			Structure: []domain.Hint{},
			Styling:   []domain.Hint{{Lines: []int{1}, Text: "rename x"}},
		},
	}
}

func TestHandin(t *testing.T) {
	ctx := context.Background()
	assignmentID := uuid.New()
	creatorID := uuid.New()
	artifact := "x = 1\nprint(x)\n"

	t.Run("RejectsEmptyArtifact", func(t *testing.T) {
		f := setupSubmission(t)

		_, err := f.svc.Handin(ctx, assignmentID, creatorID, "")
		assert.ErrorIs(t, err, service.ErrEmptyArtifact)
	})

	t.Run("FirstHandinStoresBlobRowAndFeedback", func(t *testing.T) {
		f := setupSubmission(t)

		f.artifacts.EXPECT().Put(ctx, gomock.Any(), artifact).Return(nil)
		f.submissionRepo.EXPECT().Replace(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, sub *domain.Submission) (*domain.Submission, error) {
				assert.Equal(t, assignmentID, sub.AssignmentID)
				assert.Equal(t, creatorID, sub.CreatorID)
				assert.Equal(t, sub.ID.String()+".txt", sub.ArtifactKey)
				return nil, nil
			})
		f.generator.EXPECT().Generate(ctx, artifact, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, id uuid.UUID) (*domain.FeedbackResult, error) {
				return someFeedback(id), nil
			})
		f.feedbackRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		f.producer.EXPECT().Send(ctx, service.TopicFeedbackGenerated, gomock.Any()).Return(nil)

		sub, err := f.svc.Handin(ctx, assignmentID, creatorID, artifact)
		require.NoError(t, err)
		assert.Equal(t, assignmentID, sub.AssignmentID)
		assert.True(t, strings.HasSuffix(sub.ArtifactKey, ".txt"))
	})

	t.Run("BlobUploadFailureAbortsHandin", func(t *testing.T) {
		f := setupSubmission(t)

		f.artifacts.EXPECT().Put(ctx, gomock.Any(), artifact).Return(errors.New("s3 down"))

		_, err := f.svc.Handin(ctx, assignmentID, creatorID, artifact)
		assert.EqualError(t, err, "s3 down")
	})

	t.Run("ReplaceFailureCleansUpNewBlob", func(t *testing.T) {
		f := setupSubmission(t)

		var uploadedKey string
		f.artifacts.EXPECT().Put(ctx, gomock.Any(), artifact).
			DoAndReturn(func(_ context.Context, key, _ string) error {
				uploadedKey = key
				return nil
			})
		f.submissionRepo.EXPECT().Replace(ctx, gomock.Any()).Return(nil, errors.New("deadlock"))
		f.artifacts.EXPECT().Delete(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, key string) error {
				assert.Equal(t, uploadedKey, key)
				return nil
			})

		_, err := f.svc.Handin(ctx, assignmentID, creatorID, artifact)
		assert.EqualError(t, err, "deadlock")
	})

	t.Run("ReplacementRetiresPriorBlobAndCacheEntry", func(t *testing.T) {
		f := setupSubmission(t)

		prior := &domain.Submission{
			ID:           uuid.New(),
			AssignmentID: assignmentID,
			CreatorID:    creatorID,
			ArtifactKey:  "old-key.txt",
		}

		f.artifacts.EXPECT().Put(ctx, gomock.Any(), artifact).Return(nil)
		f.submissionRepo.EXPECT().Replace(ctx, gomock.Any()).Return(prior, nil)
		f.artifacts.EXPECT().Delete(ctx, "old-key.txt").Return(nil)
		f.cache.EXPECT().Delete(ctx, "feedback:"+prior.ID.String())
		f.generator.EXPECT().Generate(ctx, artifact, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, id uuid.UUID) (*domain.FeedbackResult, error) {
				return someFeedback(id), nil
			})
		f.feedbackRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		f.producer.EXPECT().Send(ctx, service.TopicFeedbackGenerated, gomock.Any()).Return(nil)

		sub, err := f.svc.Handin(ctx, assignmentID, creatorID, artifact)
		require.NoError(t, err)
		assert.NotEqual(t, prior.ID, sub.ID)
	})

	t.Run("PriorBlobDeletionFailureDoesNotFailHandin", func(t *testing.T) {
		f := setupSubmission(t)

		prior := &domain.Submission{ID: uuid.New(), ArtifactKey: "old-key.txt"}

		f.artifacts.EXPECT().Put(ctx, gomock.Any(), artifact).Return(nil)
		f.submissionRepo.EXPECT().Replace(ctx, gomock.Any()).Return(prior, nil)
		f.artifacts.EXPECT().Delete(ctx, "old-key.txt").Return(errors.New("s3 hiccup"))
		f.cache.EXPECT().Delete(ctx, gomock.Any())
		f.generator.EXPECT().Generate(ctx, artifact, gomock.Any()).Return(nil, errors.New("llm down"))

		_, err := f.svc.Handin(ctx, assignmentID, creatorID, artifact)
		assert.NoError(t, err)
	})

	t.Run("HandinStandsWhenFeedbackGenerationFails", func(t *testing.T) {
		f := setupSubmission(t)

		f.artifacts.EXPECT().Put(ctx, gomock.Any(), artifact).Return(nil)
		f.submissionRepo.EXPECT().Replace(ctx, gomock.Any()).Return(nil, nil)
		f.generator.EXPECT().Generate(ctx, artifact, gomock.Any()).
			Return(nil, errors.New("no structured output"))

		sub, err := f.svc.Handin(ctx, assignmentID, creatorID, artifact)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, sub.ID)
	})

	t.Run("FeedbackStoreFailureSkipsEvent", func(t *testing.T) {
		f := setupSubmission(t)

		f.artifacts.EXPECT().Put(ctx, gomock.Any(), artifact).Return(nil)
		f.submissionRepo.EXPECT().Replace(ctx, gomock.Any()).Return(nil, nil)
		f.generator.EXPECT().Generate(ctx, artifact, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, id uuid.UUID) (*domain.FeedbackResult, error) {
				return someFeedback(id), nil
			})
		f.feedbackRepo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.Handin(ctx, assignmentID, creatorID, artifact)
		assert.NoError(t, err)
	})
}

func TestGetSubmission(t *testing.T) {
	ctx := context.Background()
	f := setupSubmission(t)

	want := &domain.Submission{ID: uuid.New()}
	f.submissionRepo.EXPECT().GetByID(ctx, want.ID).Return(want, nil)

	got, err := f.svc.GetSubmission(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
