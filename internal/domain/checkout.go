package domain

import "context"

type FlowState string

const (
	FlowStateSelect     FlowState = "select"
	FlowStateSubmitting FlowState = "submitting"
	FlowStateSuccess    FlowState = "success"
)

func (s FlowState) String() string {
	return string(s)
}

// DraftStore holds at most one draft per session.
type DraftStore interface {
	Set(ctx context.Context, sessionID string, draft *BookingDraft) error
	// Get returns ErrDraftNotFound when the session has no draft.
	Get(ctx context.Context, sessionID string) (*BookingDraft, error)
	Clear(ctx context.Context, sessionID string) error
	// SetIfIdle replaces the draft and resets the flow state to select in one
	// step. It returns ErrSubmissionInProgress, leaving both untouched, while the
	// session is submitting.
	SetIfIdle(ctx context.Context, sessionID string, draft *BookingDraft) error
	// ClearIfIdle is the removing counterpart of SetIfIdle. It returns
	// ErrDraftNotFound when there is nothing to remove.
	ClearIfIdle(ctx context.Context, sessionID string) error
	Migrate(ctx context.Context, oldSessionID, newSessionID string) error
}

type FlowStateStore interface {
	// Get returns FlowStateSelect when nothing is recorded for the session.
	Get(ctx context.Context, sessionID string) (FlowState, error)
	// BeginSubmit atomically enters FlowStateSubmitting. It returns
	// ErrSubmissionInProgress if the session is already submitting and
	// ErrFlowCompleted if the session's flow already succeeded.
	BeginSubmit(ctx context.Context, sessionID string) error
	Set(ctx context.Context, sessionID string, state FlowState) error
}
