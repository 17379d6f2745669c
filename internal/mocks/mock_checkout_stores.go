package mocks

import (
	"context"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockDraftStore struct {
	mock.Mock
	domain.DraftStore
}

func (m *MockDraftStore) Set(ctx context.Context, sessionID string, draft *domain.BookingDraft) error {
	args := m.Called(ctx, sessionID, draft)
	return args.Error(0)
}

func (m *MockDraftStore) Get(ctx context.Context, sessionID string) (*domain.BookingDraft, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDraft), args.Error(1)
}

func (m *MockDraftStore) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockDraftStore) SetIfIdle(ctx context.Context, sessionID string, draft *domain.BookingDraft) error {
	args := m.Called(ctx, sessionID, draft)
	return args.Error(0)
}

func (m *MockDraftStore) ClearIfIdle(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockDraftStore) Migrate(ctx context.Context, oldSessionID, newSessionID string) error {
	args := m.Called(ctx, oldSessionID, newSessionID)
	return args.Error(0)
}

type MockFlowStateStore struct {
	mock.Mock
	domain.FlowStateStore
}

func (m *MockFlowStateStore) Get(ctx context.Context, sessionID string) (domain.FlowState, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.FlowState), args.Error(1)
}

func (m *MockFlowStateStore) BeginSubmit(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockFlowStateStore) Set(ctx context.Context, sessionID string, state domain.FlowState) error {
	args := m.Called(ctx, sessionID, state)
	return args.Error(0)
}
