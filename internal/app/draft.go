package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) SetBookingDraft(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.BookingDraftRequest

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

	hall, ok := domain.FindHall(input.HallId)
	if !ok {
		app.badRequestResponse(w, r, fmt.Errorf("unknown hall %q", input.HallId))
		return
	}

	if !hall.HasShowtime(input.Showtime) {
		app.badRequestResponse(w, r, fmt.Errorf("%s has no %s show", hall.Name, input.Showtime))
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), input.MovieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	draft, err := domain.NewBookingDraft(*movie, input.ShowDate.Time, hall, input.Showtime, input.SeatCount)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.flow.SetDraft(r.Context(), app.sessionID(r), draft)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSubmissionInProgress):
			logger.Warn("draft change refused while a payment is in flight")
			app.conflictResponse(w, r, ErrPaymentInProgress)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiDraft(draft), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingDraft(w http.ResponseWriter, r *http.Request) {
	checkout, err := app.flow.Enter(r.Context(), app.sessionID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoActiveDraft):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiDraft(checkout.Draft), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBookingDraft(w http.ResponseWriter, r *http.Request) {
	err := app.flow.Cancel(r.Context(), app.sessionID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoActiveDraft):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrSubmissionInProgress):
			app.conflictResponse(w, r, ErrPaymentInProgress)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toApiDraft(draft *domain.BookingDraft) *api.BookingDraftResponse {
	if draft == nil {
		return nil
	}

	return &api.BookingDraftResponse{
		Movie:       toMovieSummary(&draft.Movie, today()),
		ShowDate:    types.Date{Time: draft.ShowDate},
		HallId:      draft.HallID,
		ShowTime:    draft.ShowTime,
		Seats:       draft.Seats,
		TotalAmount: draft.TotalAmount,
		Currency:    domain.Currency,
	}
}
