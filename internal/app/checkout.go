package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/domain"
	appvalidator "github.com/metinatakli/cinex-booking/internal/validator"
)

// EnterCheckout is the payment step's entry guard. Without a draft the client
// is sent back to the catalog.
func (app *Application) EnterCheckout(w http.ResponseWriter, r *http.Request) {
	checkout, err := app.flow.Enter(r.Context(), app.sessionID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoActiveDraft):
			app.redirectErrorResponse(w, r, http.StatusNotFound, ErrNoActiveBooking, booking.RedirectCatalog)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.CheckoutResponse{
		State:         checkout.State.String(),
		Draft:         toApiDraft(checkout.Draft),
		Notifications: []api.Notification{},
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// SubmitPayment is "proceed to pay". The client should hold its pay control
// disabled until the response arrives; a second trigger meanwhile gets 409.
func (app *Application) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.PaymentRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	principal, err := app.currentPrincipal(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	outcome := app.flow.Submit(r.Context(), app.sessionID(r), principal, toInstrument(input))

	notifications := app.dispatchNotifications(r, principal, outcome)

	switch {
	case outcome.Succeeded():
		logger.Info("booking paid", "booking_id", outcome.BookingID)

		resp := api.CheckoutResponse{
			State:         outcome.State.String(),
			Booking:       toApiReceipt(outcome.Booking),
			Notifications: notifications,
		}

		err = app.writeJSON(w, http.StatusCreated, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

	case errors.Is(outcome.Err, domain.ErrAuthRequired):
		app.redirectErrorResponse(w, r, http.StatusUnauthorized, ErrUnauthorized, outcome.Redirect)

	case errors.Is(outcome.Err, domain.ErrNoActiveDraft):
		app.redirectErrorResponse(w, r, http.StatusNotFound, ErrNoActiveBooking, outcome.Redirect)

	case errors.Is(outcome.Err, domain.ErrSubmissionInProgress):
		app.conflictResponse(w, r, ErrPaymentInProgress)

	case errors.Is(outcome.Err, domain.ErrFlowCompleted):
		app.redirectErrorResponse(w, r, http.StatusConflict, ErrBookingCompleted, outcome.Redirect)

	case errors.Is(outcome.Err, domain.ErrIncompleteSelection):
		app.errorResponse(w, r, http.StatusBadRequest, ErrIncompleteSelection)

	case isInstrumentError(outcome.Err):
		app.failedValidationResponse(w, r, outcome.Err)

	case len(notifications) > 0:
		// The attempt ran and failed; the draft is kept for a retry.
		logger.Warn("checkout attempt failed", "error", outcome.Err, "booking_id", outcome.BookingID)

		status := http.StatusPaymentRequired
		if outcome.BookingID == "" {
			status = http.StatusInternalServerError
		}

		resp := api.CheckoutResponse{
			State:         outcome.State.String(),
			Notifications: notifications,
		}

		err = app.writeJSON(w, status, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

	default:
		app.serverErrorResponse(w, r, outcome.Err)
	}
}

func toInstrument(input api.PaymentRequest) domain.PaymentInstrument {
	return domain.PaymentInstrument{
		Method:     domain.PaymentMethod(input.PaymentMethod),
		CardNumber: appvalidator.FormatCardNumber(input.CardNumber),
		CardName:   input.CardName,
		Expiry:     appvalidator.FormatExpiry(input.Expiry),
		CVV:        appvalidator.SanitizeCVV(input.Cvv),
		UpiID:      input.UpiId,
	}
}

func isInstrumentError(err error) bool {
	var instrumentErr *appvalidator.InstrumentError
	return errors.As(err, &instrumentErr)
}
