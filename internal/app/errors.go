package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinex-booking/api"
	appvalidator "github.com/metinatakli/cinex-booking/internal/validator"
)

const (
	ErrInternalServer      = "The server encountered a problem and could not process your request"
	ErrNotFound            = "The requested resource not found"
	ErrMethodNotAllowed    = "The method is not supported for this resource"
	ErrUnauthorized        = "You must be authenticated to access this resource"
	ErrInvalidCredentials  = "Invalid authentication credentials"
	ErrFailedValidation    = "One or more fields are invalid"
	ErrNoActiveBooking     = "There is no active booking to pay for"
	ErrPaymentInProgress   = "A payment for this booking is already in progress"
	ErrBookingCompleted    = "This booking has already been completed"
	ErrIncompleteSelection = "Please select date, hall, and showtime"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.redirectErrorResponse(w, r, status, message, "")
}

// redirectErrorResponse is errorResponse with a hint telling the client where
// to navigate next.
func (app *Application) redirectErrorResponse(w http.ResponseWriter, r *http.Request, status int, message, redirect string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	if redirect != "" {
		resp.RedirectUrl = &redirect
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorized)
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (app *Application) conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusConflict, message)
}

// failedValidationResponse renders request validator errors and payment
// instrument errors as a list of field issues.
func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErrors validator.ValidationErrors
		instrumentErr    *appvalidator.InstrumentError
		issues           []api.ValidationError
	)

	switch {
	case errors.As(err, &validationErrors):
		issues = make([]api.ValidationError, len(validationErrors))
		for i, fe := range validationErrors {
			issues[i] = api.ValidationError{
				Field: fe.Field(),
				Issue: appvalidator.ValidationMessage(fe),
			}
		}
	case errors.As(err, &instrumentErr):
		issues = []api.ValidationError{{Field: instrumentErr.Field, Issue: instrumentErr.Reason}}
	default:
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: issues,
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
