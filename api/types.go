// Package api holds the request and response types of the HTTP API and the
// OpenAPI document describing them.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message     string    `json:"message"`
	RequestId   string    `json:"requestId"`
	Timestamp   time.Time `json:"timestamp"`
	RedirectUrl *string   `json:"redirectUrl,omitempty"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50,alpha"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50,alpha"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AlreadyLoggedInResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type MovieStatus string

const (
	COMINGSOON MovieStatus = "COMING_SOON"
	NOWSHOWING MovieStatus = "NOW_SHOWING"
)

type GetMoviesParams struct {
	Term     *string `validate:"omitempty,max=100"`
	Genre    *string `validate:"omitempty,max=50"`
	Page     *int    `validate:"omitempty,gte=1,lte=1000"`
	PageSize *int    `validate:"omitempty,gte=1,lte=100"`
	Sort     *string `validate:"omitempty,oneof=id -id title -title release_date -release_date"`
}

type MovieSummary struct {
	Id          int                `json:"id"`
	Title       string             `json:"title"`
	PosterUrl   string             `json:"posterUrl"`
	Genres      []string           `json:"genres"`
	Languages   []string           `json:"languages"`
	Duration    int                `json:"duration"`
	ReleaseDate openapi_types.Date `json:"releaseDate"`
	Status      MovieStatus        `json:"status"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata"`
}

type MovieDetailResponse struct {
	MovieSummary
	Description string `json:"description"`
}

type Hall struct {
	Id        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Showtimes []string `json:"showtimes"`
}

type HallListResponse struct {
	Halls []Hall `json:"halls"`
}

type BookingDraftRequest struct {
	MovieId   int                `json:"movieId" validate:"required,gte=1"`
	ShowDate  openapi_types.Date `json:"showDate" validate:"show_date"`
	HallId    string             `json:"hallId" validate:"required"`
	Showtime  string             `json:"showtime" validate:"required"`
	SeatCount int                `json:"seatCount" validate:"required,gte=1,lte=10"`
}

type BookingDraftResponse struct {
	Movie       MovieSummary       `json:"movie"`
	ShowDate    openapi_types.Date `json:"showDate"`
	HallId      string             `json:"hallId"`
	ShowTime    string             `json:"showTime"`
	Seats       []string           `json:"seats"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Currency    string             `json:"currency"`
}

type PaymentRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,payment_method"`
	CardNumber    string `json:"cardNumber,omitempty"`
	CardName      string `json:"cardName,omitempty"`
	Expiry        string `json:"expiry,omitempty"`
	Cvv           string `json:"cvv,omitempty"`
	UpiId         string `json:"upiId,omitempty"`
}

type Notification struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type BookingReceipt struct {
	Id            string             `json:"id"`
	Reference     string             `json:"reference"`
	MovieId       int                `json:"movieId"`
	MovieTitle    string             `json:"movieTitle"`
	ShowDate      openapi_types.Date `json:"showDate"`
	ShowTime      string             `json:"showTime"`
	Seats         []string           `json:"seats"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	Currency      string             `json:"currency"`
	PaymentStatus string             `json:"paymentStatus"`
	BookingStatus string             `json:"bookingStatus"`
	CreatedAt     *time.Time         `json:"createdAt,omitempty"`
}

type CheckoutResponse struct {
	State         string                `json:"state"`
	Draft         *BookingDraftResponse `json:"draft,omitempty"`
	Booking       *BookingReceipt       `json:"booking,omitempty"`
	Notifications []Notification        `json:"notifications"`
	RedirectUrl   *string               `json:"redirectUrl,omitempty"`
}

type GetUserBookingsParams struct {
	Page     *int `validate:"omitempty,gte=1,lte=1000"`
	PageSize *int `validate:"omitempty,gte=1,lte=100"`
}

type UserBookingsResponse struct {
	Bookings []BookingReceipt `json:"bookings"`
	Metadata Metadata         `json:"metadata"`
}
