package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinSeats = 1
	MaxSeats = 10

	// BookingWindowDays is how many calendar days, starting today, can be booked.
	BookingWindowDays = 14

	Currency   = "INR"
	DateLayout = "2006-01-02"
)

// TicketPrice is the flat per-seat price in whole currency units.
var TicketPrice = decimal.NewFromInt(250)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:    {},
	PaymentStatusFailed:  {},
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed
}

func (s PaymentStatus) CanTransitionTo(to PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == to {
			return true
		}
	}

	return false
}

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// BookingDraft is the in-progress selection of a session. It is replaced as a
// whole, never patched.
type BookingDraft struct {
	Movie       Movie
	ShowDate    time.Time
	HallID      string
	Slot        string
	ShowTime    string
	Seats       []string
	TotalAmount decimal.Decimal
}

func NewBookingDraft(movie Movie, showDate time.Time, hall Hall, slot string, seatCount int) (*BookingDraft, error) {
	if seatCount < MinSeats || seatCount > MaxSeats {
		return nil, ErrInvalidSeatCount
	}

	seats := SeatLabels(seatCount)

	return &BookingDraft{
		Movie:       movie,
		ShowDate:    truncateToDate(showDate),
		HallID:      hall.ID,
		Slot:        slot,
		ShowTime:    fmt.Sprintf("%s - %s", slot, hall.Name),
		Seats:       seats,
		TotalAmount: TotalFor(len(seats)),
	}, nil
}

// SeatLabels returns the synthetic labels A1..An.
func SeatLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("A%d", i+1)
	}

	return labels
}

func TotalFor(seatCount int) decimal.Decimal {
	return TicketPrice.Mul(decimal.NewFromInt(int64(seatCount)))
}

func (d *BookingDraft) Complete() bool {
	return d != nil &&
		!d.ShowDate.IsZero() &&
		d.ShowTime != "" &&
		d.HallID != "" &&
		len(d.Seats) > 0
}

func (d *BookingDraft) ShowDateString() string {
	return d.ShowDate.Format(DateLayout)
}

type BookingRecord struct {
	ID            string
	UserID        int
	MovieID       int
	MovieTitle    string
	ShowDate      time.Time
	ShowTime      string
	Seats         []string
	TotalAmount   decimal.Decimal
	PaymentStatus PaymentStatus
	BookingStatus BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBookingRecord copies the draft verbatim into a pending record owned by the principal.
func NewBookingRecord(id string, draft *BookingDraft, principal *Principal) *BookingRecord {
	seats := make([]string, len(draft.Seats))
	copy(seats, draft.Seats)

	return &BookingRecord{
		ID:            id,
		UserID:        principal.UserID,
		MovieID:       draft.Movie.ID,
		MovieTitle:    draft.Movie.Title,
		ShowDate:      draft.ShowDate,
		ShowTime:      draft.ShowTime,
		Seats:         seats,
		TotalAmount:   draft.TotalAmount,
		PaymentStatus: PaymentStatusPending,
		BookingStatus: BookingStatusConfirmed,
	}
}

// Reference is the short code printed on receipts.
func (b *BookingRecord) Reference() string {
	ref := strings.ReplaceAll(b.ID, "-", "")
	if len(ref) > 8 {
		ref = ref[:8]
	}

	return strings.ToUpper(ref)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *BookingRecord) error
	UpdatePaymentStatus(ctx context.Context, id string, from, to PaymentStatus) error
	GetByIdAndUserId(ctx context.Context, id string, userId int) (*BookingRecord, error)
	GetByUserId(ctx context.Context, userId int, pagination Pagination) ([]BookingRecord, *Metadata, error)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
