package mocks

import (
	"context"
	"sync"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

// MemoryDraftStore is an in-process DraftStore. It shares the checkout state
// of states for SetIfIdle and ClearIfIdle.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]domain.BookingDraft
	states *MemoryFlowStateStore
}

func NewMemoryDraftStore(states *MemoryFlowStateStore) *MemoryDraftStore {
	return &MemoryDraftStore{
		drafts: make(map[string]domain.BookingDraft),
		states: states,
	}
}

func (s *MemoryDraftStore) Set(ctx context.Context, sessionID string, draft *domain.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[sessionID] = *draft
	return nil
}

func (s *MemoryDraftStore) Get(ctx context.Context, sessionID string) (*domain.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return &draft, nil
}

func (s *MemoryDraftStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, sessionID)
	return nil
}

func (s *MemoryDraftStore) SetIfIdle(ctx context.Context, sessionID string, draft *domain.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states.mu.Lock()
	defer s.states.mu.Unlock()

	if s.states.states[sessionID] == domain.FlowStateSubmitting {
		return domain.ErrSubmissionInProgress
	}

	s.drafts[sessionID] = *draft
	s.states.states[sessionID] = domain.FlowStateSelect
	return nil
}

func (s *MemoryDraftStore) ClearIfIdle(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states.mu.Lock()
	defer s.states.mu.Unlock()

	if s.states.states[sessionID] == domain.FlowStateSubmitting {
		return domain.ErrSubmissionInProgress
	}

	if _, ok := s.drafts[sessionID]; !ok {
		return domain.ErrDraftNotFound
	}

	delete(s.drafts, sessionID)
	s.states.states[sessionID] = domain.FlowStateSelect
	return nil
}

func (s *MemoryDraftStore) Migrate(ctx context.Context, oldSessionID, newSessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if oldSessionID == "" || oldSessionID == newSessionID {
		return nil
	}

	draft, ok := s.drafts[oldSessionID]
	if !ok {
		return nil
	}

	delete(s.drafts, oldSessionID)
	s.drafts[newSessionID] = draft
	return nil
}

// MemoryFlowStateStore is an in-process FlowStateStore.
type MemoryFlowStateStore struct {
	mu     sync.Mutex
	states map[string]domain.FlowState
}

func NewMemoryFlowStateStore() *MemoryFlowStateStore {
	return &MemoryFlowStateStore{states: make(map[string]domain.FlowState)}
}

func (s *MemoryFlowStateStore) Get(ctx context.Context, sessionID string) (domain.FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[sessionID]
	if !ok {
		return domain.FlowStateSelect, nil
	}
	return state, nil
}

func (s *MemoryFlowStateStore) BeginSubmit(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.states[sessionID] {
	case domain.FlowStateSubmitting:
		return domain.ErrSubmissionInProgress
	case domain.FlowStateSuccess:
		return domain.ErrFlowCompleted
	}

	s.states[sessionID] = domain.FlowStateSubmitting
	return nil
}

func (s *MemoryFlowStateStore) Set(ctx context.Context, sessionID string, state domain.FlowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[sessionID] = state
	return nil
}
