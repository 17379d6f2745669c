package booking

import (
	"context"
	"errors"
	"log/slog"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/validator"
)

const (
	RedirectAuth    = "/auth"
	RedirectCatalog = "/"
)

type Transactor interface {
	CreateBooking(ctx context.Context, draft *domain.BookingDraft, principal *domain.Principal) (string, error)
	ProcessPayment(ctx context.Context, bookingID string, pc PaymentContext) PaymentResult
}

// Flow sequences a session's checkout: select -> submitting -> success, with
// every failure returning to select and keeping the draft.
type Flow struct {
	drafts domain.DraftStore
	states domain.FlowStateStore
	tx     Transactor
	logger *slog.Logger
}

func NewFlow(drafts domain.DraftStore, states domain.FlowStateStore, tx Transactor, logger *slog.Logger) *Flow {
	return &Flow{
		drafts: drafts,
		states: states,
		tx:     tx,
		logger: logger,
	}
}

type Checkout struct {
	Draft *domain.BookingDraft
	State domain.FlowState
}

// Outcome is the result of a single "proceed to pay" trigger.
type Outcome struct {
	State         domain.FlowState
	BookingID     string
	Booking       *domain.BookingRecord
	Notifications []Notification
	Redirect      string
	Err           error
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.State == domain.FlowStateSuccess
}

// SetDraft starts a new flow instance for the session from the given draft.
func (f *Flow) SetDraft(ctx context.Context, sessionID string, draft *domain.BookingDraft) error {
	return f.drafts.SetIfIdle(ctx, sessionID, draft)
}

// Cancel drops the draft. It is refused while a submission is in flight.
func (f *Flow) Cancel(ctx context.Context, sessionID string) error {
	err := f.drafts.ClearIfIdle(ctx, sessionID)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return domain.ErrNoActiveDraft
	}

	return err
}

// Enter guards the payment step: without a draft there is nothing to pay for.
func (f *Flow) Enter(ctx context.Context, sessionID string) (*Checkout, error) {
	draft, err := f.drafts.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return nil, domain.ErrNoActiveDraft
		}
		return nil, err
	}

	state, err := f.states.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &Checkout{Draft: draft, State: state}, nil
}

func (f *Flow) State(ctx context.Context, sessionID string) (domain.FlowState, error) {
	return f.states.Get(ctx, sessionID)
}

// Submit runs one payment attempt for the session's draft. The attempt is not
// bound to ctx's cancellation: once it starts it always resolves.
func (f *Flow) Submit(
	ctx context.Context,
	sessionID string,
	principal *domain.Principal,
	instrument domain.PaymentInstrument) Outcome {

	ctx = context.WithoutCancel(ctx)

	current, err := f.states.Get(ctx, sessionID)
	if err != nil {
		return Outcome{State: domain.FlowStateSelect, Err: err}
	}

	if !principal.Authenticated() {
		return Outcome{
			State:         current,
			Redirect:      RedirectAuth,
			Notifications: []Notification{authRequired()},
			Err:           domain.ErrAuthRequired,
		}
	}

	draft, err := f.drafts.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return Outcome{State: current, Redirect: RedirectCatalog, Err: domain.ErrNoActiveDraft}
		}
		return Outcome{State: current, Err: err}
	}

	if !draft.Complete() {
		return Outcome{State: current, Err: domain.ErrIncompleteSelection}
	}

	err = validator.ValidateInstrument(instrument)
	if err != nil {
		return Outcome{State: current, Err: err}
	}

	err = f.states.BeginSubmit(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionInProgress) {
			f.logger.Warn("ignoring payment trigger while a submission is in flight", "user_id", principal.UserID)
			return Outcome{State: domain.FlowStateSubmitting, Err: err}
		}
		if errors.Is(err, domain.ErrFlowCompleted) {
			return Outcome{State: domain.FlowStateSuccess, Redirect: RedirectCatalog, Err: err}
		}
		return Outcome{State: current, Err: err}
	}

	// The draft cannot change once submitting is claimed. Pay for the selection
	// as it stands now, not as it was read above.
	draft, err = f.drafts.Get(ctx, sessionID)
	if err == nil && !draft.Complete() {
		err = domain.ErrIncompleteSelection
	}
	if err != nil {
		f.resetState(ctx, sessionID)
		if errors.Is(err, domain.ErrDraftNotFound) {
			return Outcome{State: domain.FlowStateSelect, Redirect: RedirectCatalog, Err: domain.ErrNoActiveDraft}
		}
		return Outcome{State: domain.FlowStateSelect, Err: err}
	}

	outcome := f.attempt(ctx, sessionID, draft, principal)

	f.finish(ctx, sessionID, outcome)

	return outcome
}

func (f *Flow) attempt(
	ctx context.Context,
	sessionID string,
	draft *domain.BookingDraft,
	principal *domain.Principal) (outcome Outcome) {

	defer func() {
		if p := recover(); p != nil {
			f.resetState(ctx, sessionID)
			panic(p)
		}
	}()

	bookingID, err := f.tx.CreateBooking(ctx, draft, principal)
	if err != nil {
		outcome = Outcome{
			State:         domain.FlowStateSelect,
			Notifications: []Notification{bookingFailed(draft.Movie.Title, draft.TotalAmount)},
			Err:           err,
		}
		if errors.Is(err, domain.ErrAuthRequired) {
			outcome.Redirect = RedirectAuth
		}
		return outcome
	}

	result := f.tx.ProcessPayment(ctx, bookingID, PaymentContext{
		MovieTitle: draft.Movie.Title,
		Amount:     draft.TotalAmount,
	})

	if !result.Paid() {
		err := result.Err
		if err == nil {
			err = domain.ErrPaymentDeclined
		}

		outcome = Outcome{State: domain.FlowStateSelect, BookingID: bookingID, Err: err}
		if result.Notification.Kind != "" {
			outcome.Notifications = []Notification{result.Notification}
		}
		return outcome
	}

	booking := domain.NewBookingRecord(bookingID, draft, principal)
	booking.PaymentStatus = domain.PaymentStatusPaid

	return Outcome{
		State:         domain.FlowStateSuccess,
		BookingID:     bookingID,
		Booking:       booking,
		Notifications: []Notification{result.Notification},
	}
}

// finish records where the attempt landed. Success is terminal: the draft goes
// away with it.
func (f *Flow) finish(ctx context.Context, sessionID string, outcome Outcome) {
	if outcome.State == domain.FlowStateSuccess {
		err := f.drafts.Clear(ctx, sessionID)
		if err != nil {
			f.logger.Error("failed to clear booking draft", "error", err, "booking_id", outcome.BookingID)
		}
	}

	err := f.states.Set(ctx, sessionID, outcome.State)
	if err != nil {
		f.logger.Error("failed to record checkout state", "error", err, "state", outcome.State)
	}
}

func (f *Flow) resetState(ctx context.Context, sessionID string) {
	err := f.states.Set(ctx, sessionID, domain.FlowStateSelect)
	if err != nil {
		f.logger.Error("failed to reset checkout state", "error", err)
	}
}
