package app

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

const DefaultBookingSort = "-created_at"

func (app *Application) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	var (
		params api.GetUserBookingsParams
		err    error
	)

	params.Page, err = queryInt(r, "page")
	if err == nil {
		params.PageSize, err = queryInt(r, "pageSize")
	}
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)
	pagination := toPagination(params)

	bookings, metadata, err := app.bookingRepo.GetByUserId(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	receipts := make([]api.BookingReceipt, len(bookings))
	for i := range bookings {
		receipts[i] = *toApiReceipt(&bookings[i])
	}

	resp := api.UserBookingsResponse{
		Bookings: receipts,
		Metadata: *toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookingById(w http.ResponseWriter, r *http.Request) {
	bookingId := chi.URLParam(r, "bookingId")

	if uuid.Validate(bookingId) != nil {
		app.notFoundResponse(w, r)
		return
	}

	userId := app.contextGetUserId(r)

	record, err := app.bookingRepo.GetByIdAndUserId(r.Context(), bookingId, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiReceipt(record), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toPagination(params api.GetUserBookingsParams) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     DefaultBookingSort,
	}

	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.PageSize != nil {
		pagination.PageSize = *params.PageSize
	}

	return pagination
}

func toApiReceipt(record *domain.BookingRecord) *api.BookingReceipt {
	if record == nil {
		return nil
	}

	receipt := &api.BookingReceipt{
		Id:            record.ID,
		Reference:     record.Reference(),
		MovieId:       record.MovieID,
		MovieTitle:    record.MovieTitle,
		ShowDate:      types.Date{Time: record.ShowDate},
		ShowTime:      record.ShowTime,
		Seats:         record.Seats,
		TotalAmount:   record.TotalAmount,
		Currency:      domain.Currency,
		PaymentStatus: string(record.PaymentStatus),
		BookingStatus: string(record.BookingStatus),
	}

	if !record.CreatedAt.IsZero() {
		createdAt := record.CreatedAt
		receipt.CreatedAt = &createdAt
	}

	return receipt
}
