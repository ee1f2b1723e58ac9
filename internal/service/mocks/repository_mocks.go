// Package mocks contains gomock mocks for the service-layer interfaces.
package mocks

import (
	"context"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"peerreview_service/internal/domain"
	"peerreview_service/internal/repository"
)

type MockSubmissionRepository struct {
	ctrl     *gomock.Controller
	recorder *MockSubmissionRepositoryMockRecorder
}

type MockSubmissionRepositoryMockRecorder struct {
	mock *MockSubmissionRepository
}

func NewMockSubmissionRepository(ctrl *gomock.Controller) *MockSubmissionRepository {
	mock := &MockSubmissionRepository{ctrl: ctrl}
	mock.recorder = &MockSubmissionRepositoryMockRecorder{mock}
	return mock
}

func (m *MockSubmissionRepository) EXPECT() *MockSubmissionRepositoryMockRecorder {
	return m.recorder
}

func (m *MockSubmissionRepository) Replace(ctx context.Context, sub *domain.Submission) (*domain.Submission, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Replace", ctx, sub)
	ret0, _ := ret[0].(*domain.Submission)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSubmissionRepositoryMockRecorder) Replace(ctx, sub interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Replace", reflect.TypeOf((*MockSubmissionRepository)(nil).Replace), ctx, sub)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Submission)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSubmissionRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockSubmissionRepository)(nil).GetByID), ctx, id)
}

type MockFeedbackRepository struct {
	ctrl     *gomock.Controller
	recorder *MockFeedbackRepositoryMockRecorder
}

type MockFeedbackRepositoryMockRecorder struct {
	mock *MockFeedbackRepository
}

func NewMockFeedbackRepository(ctrl *gomock.Controller) *MockFeedbackRepository {
	mock := &MockFeedbackRepository{ctrl: ctrl}
	mock.recorder = &MockFeedbackRepositoryMockRecorder{mock}
	return mock
}

func (m *MockFeedbackRepository) EXPECT() *MockFeedbackRepositoryMockRecorder {
	return m.recorder
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *domain.FeedbackResult) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, feedback)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockFeedbackRepositoryMockRecorder) Create(ctx, feedback interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockFeedbackRepository)(nil).Create), ctx, feedback)
}

func (m *MockFeedbackRepository) GetBySubmission(ctx context.Context, submissionID uuid.UUID) (*domain.FeedbackResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBySubmission", ctx, submissionID)
	ret0, _ := ret[0].(*domain.FeedbackResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockFeedbackRepositoryMockRecorder) GetBySubmission(ctx, submissionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBySubmission", reflect.TypeOf((*MockFeedbackRepository)(nil).GetBySubmission), ctx, submissionID)
}

type MockReviewRepository struct {
	ctrl     *gomock.Controller
	recorder *MockReviewRepositoryMockRecorder
}

type MockReviewRepositoryMockRecorder struct {
	mock *MockReviewRepository
}

func NewMockReviewRepository(ctrl *gomock.Controller) *MockReviewRepository {
	mock := &MockReviewRepository{ctrl: ctrl}
	mock.recorder = &MockReviewRepositoryMockRecorder{mock}
	return mock
}

func (m *MockReviewRepository) EXPECT() *MockReviewRepositoryMockRecorder {
	return m.recorder
}

func (m *MockReviewRepository) CloseAssignment(ctx context.Context, assignmentID uuid.UUID, assign repository.AssignFunc) (map[uuid.UUID]uuid.UUID, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CloseAssignment", ctx, assignmentID, assign)
	ret0, _ := ret[0].(map[uuid.UUID]uuid.UUID)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockReviewRepositoryMockRecorder) CloseAssignment(ctx, assignmentID, assign interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CloseAssignment", reflect.TypeOf((*MockReviewRepository)(nil).CloseAssignment), ctx, assignmentID, assign)
}
