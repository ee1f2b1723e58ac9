package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"peerreview_service/internal/domain"
)

type MockArtifactStore struct {
	ctrl     *gomock.Controller
	recorder *MockArtifactStoreMockRecorder
}

type MockArtifactStoreMockRecorder struct {
	mock *MockArtifactStore
}

func NewMockArtifactStore(ctrl *gomock.Controller) *MockArtifactStore {
	mock := &MockArtifactStore{ctrl: ctrl}
	mock.recorder = &MockArtifactStoreMockRecorder{mock}
	return mock
}

func (m *MockArtifactStore) EXPECT() *MockArtifactStoreMockRecorder {
	return m.recorder
}

func (m *MockArtifactStore) Put(ctx context.Context, key string, text string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Put", ctx, key, text)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockArtifactStoreMockRecorder) Put(ctx, key, text interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Put", reflect.TypeOf((*MockArtifactStore)(nil).Put), ctx, key, text)
}

func (m *MockArtifactStore) Get(ctx context.Context, key string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, key)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockArtifactStoreMockRecorder) Get(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockArtifactStore)(nil).Get), ctx, key)
}

func (m *MockArtifactStore) Delete(ctx context.Context, key string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, key)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockArtifactStoreMockRecorder) Delete(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockArtifactStore)(nil).Delete), ctx, key)
}

type MockFeedbackGenerator struct {
	ctrl     *gomock.Controller
	recorder *MockFeedbackGeneratorMockRecorder
}

type MockFeedbackGeneratorMockRecorder struct {
	mock *MockFeedbackGenerator
}

func NewMockFeedbackGenerator(ctrl *gomock.Controller) *MockFeedbackGenerator {
	mock := &MockFeedbackGenerator{ctrl: ctrl}
	mock.recorder = &MockFeedbackGeneratorMockRecorder{mock}
	return mock
}

func (m *MockFeedbackGenerator) EXPECT() *MockFeedbackGeneratorMockRecorder {
	return m.recorder
}

func (m *MockFeedbackGenerator) Generate(ctx context.Context, artifactText string, submissionID uuid.UUID) (*domain.FeedbackResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Generate", ctx, artifactText, submissionID)
	ret0, _ := ret[0].(*domain.FeedbackResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockFeedbackGeneratorMockRecorder) Generate(ctx, artifactText, submissionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Generate", reflect.TypeOf((*MockFeedbackGenerator)(nil).Generate), ctx, artifactText, submissionID)
}

type MockEventPublisher struct {
	ctrl     *gomock.Controller
	recorder *MockEventPublisherMockRecorder
}

type MockEventPublisherMockRecorder struct {
	mock *MockEventPublisher
}

func NewMockEventPublisher(ctrl *gomock.Controller) *MockEventPublisher {
	mock := &MockEventPublisher{ctrl: ctrl}
	mock.recorder = &MockEventPublisherMockRecorder{mock}
	return mock
}

func (m *MockEventPublisher) EXPECT() *MockEventPublisherMockRecorder {
	return m.recorder
}

func (m *MockEventPublisher) Send(ctx context.Context, topic string, message interface{}) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", ctx, topic, message)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockEventPublisherMockRecorder) Send(ctx, topic, message interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockEventPublisher)(nil).Send), ctx, topic, message)
}

type MockCache struct {
	ctrl     *gomock.Controller
	recorder *MockCacheMockRecorder
}

type MockCacheMockRecorder struct {
	mock *MockCache
}

func NewMockCache(ctrl *gomock.Controller) *MockCache {
	mock := &MockCache{ctrl: ctrl}
	mock.recorder = &MockCacheMockRecorder{mock}
	return mock
}

func (m *MockCache) EXPECT() *MockCacheMockRecorder {
	return m.recorder
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, key)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

func (mr *MockCacheMockRecorder) Get(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockCache)(nil).Get), ctx, key)
}

func (m *MockCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Set", ctx, key, data, ttl)
}

func (mr *MockCacheMockRecorder) Set(ctx, key, data, ttl interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Set", reflect.TypeOf((*MockCache)(nil).Set), ctx, key, data, ttl)
}

func (m *MockCache) Delete(ctx context.Context, key string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Delete", ctx, key)
}

func (mr *MockCacheMockRecorder) Delete(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockCache)(nil).Delete), ctx, key)
}
