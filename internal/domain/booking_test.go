package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMovie = Movie{ID: 7, Title: "Interstellar", Genres: []string{"Sci-Fi"}, Languages: []string{"English"}, Duration: 169}

func TestNewBookingDraft_SeatsAndTotal(t *testing.T) {
	hall := Halls[0]
	showDate := time.Date(2026, 10, 20, 15, 4, 5, 0, time.UTC)

	for n := MinSeats; n <= MaxSeats; n++ {
		t.Run(fmt.Sprintf("%d seats", n), func(t *testing.T) {
			draft, err := NewBookingDraft(testMovie, showDate, hall, hall.Showtimes[0], n)
			require.NoError(t, err)

			require.Len(t, draft.Seats, n)
			for i, label := range draft.Seats {
				assert.Equal(t, fmt.Sprintf("A%d", i+1), label)
			}

			want := TicketPrice.Mul(decimal.NewFromInt(int64(n)))
			assert.True(t, want.Equal(draft.TotalAmount), "total = %s, want %s", draft.TotalAmount, want)
			assert.True(t, TotalFor(len(draft.Seats)).Equal(draft.TotalAmount))
		})
	}
}

func TestNewBookingDraft_ThreeSeats(t *testing.T) {
	draft, err := NewBookingDraft(testMovie, time.Now(), Halls[1], Halls[1].Showtimes[2], 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "A2", "A3"}, draft.Seats)
	assert.Equal(t, "750", draft.TotalAmount.String())
}

func TestNewBookingDraft_HallQualifiedShowTime(t *testing.T) {
	showDate := time.Date(2026, 10, 20, 23, 59, 0, 0, time.UTC)

	draft, err := NewBookingDraft(testMovie, showDate, Halls[2], "6:00 PM", 1)
	require.NoError(t, err)

	assert.Equal(t, "6:00 PM - Cinepolis", draft.ShowTime)
	assert.Equal(t, "3", draft.HallID)
	assert.Equal(t, "2026-10-20", draft.ShowDateString())
	assert.True(t, draft.Complete())
}

func TestNewBookingDraft_InvalidSeatCount(t *testing.T) {
	for _, n := range []int{-1, 0, 11, 100} {
		_, err := NewBookingDraft(testMovie, time.Now(), Halls[0], Halls[0].Showtimes[0], n)
		assert.ErrorIs(t, err, ErrInvalidSeatCount, "seat count %d", n)
	}
}

func TestBookingDraft_Complete(t *testing.T) {
	var nilDraft *BookingDraft
	assert.False(t, nilDraft.Complete())

	draft := &BookingDraft{ShowDate: time.Now(), ShowTime: "10:00 AM - INOX", HallID: "2"}
	assert.False(t, draft.Complete(), "draft without seats must be incomplete")

	draft.Seats = SeatLabels(2)
	assert.True(t, draft.Complete())

	draft.HallID = ""
	assert.False(t, draft.Complete())
}

func TestNewBookingRecord(t *testing.T) {
	draft, err := NewBookingDraft(testMovie, time.Now(), Halls[0], "1:30 PM", 2)
	require.NoError(t, err)

	principal := &Principal{UserID: 42, Email: "jane@example.com"}
	record := NewBookingRecord("3f2b8c1d-0000-4000-8000-000000000000", draft, principal)

	assert.Equal(t, 42, record.UserID)
	assert.Equal(t, testMovie.ID, record.MovieID)
	assert.Equal(t, draft.ShowTime, record.ShowTime)
	assert.Equal(t, draft.Seats, record.Seats)
	assert.True(t, draft.TotalAmount.Equal(record.TotalAmount))
	assert.Equal(t, PaymentStatusPending, record.PaymentStatus)
	assert.Equal(t, BookingStatusConfirmed, record.BookingStatus)
	assert.Equal(t, "3F2B8C1D", record.Reference())

	record.Seats[0] = "Z9"
	assert.Equal(t, "A1", draft.Seats[0], "record must not share the draft's seat slice")
}

func TestPaymentStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentStatusPending, PaymentStatusPaid, true},
		{PaymentStatusPending, PaymentStatusFailed, true},
		{PaymentStatusPaid, PaymentStatusFailed, false},
		{PaymentStatusFailed, PaymentStatusPaid, false},
		{PaymentStatusPaid, PaymentStatusPending, false},
		{PaymentStatusPending, PaymentStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.False(t, PaymentStatusPending.IsTerminal())
	assert.True(t, PaymentStatusPaid.IsTerminal())
	assert.True(t, PaymentStatusFailed.IsTerminal())
}

func TestFindHall(t *testing.T) {
	hall, ok := FindHall("4")
	require.True(t, ok)
	assert.Equal(t, "Carnival Cinemas", hall.Name)
	assert.True(t, hall.HasShowtime("8:45 PM"))
	assert.False(t, hall.HasShowtime("8:46 PM"))

	_, ok = FindHall("99")
	assert.False(t, ok)
}

func TestPrincipalAuthenticated(t *testing.T) {
	var p *Principal
	assert.False(t, p.Authenticated())
	assert.False(t, (&Principal{}).Authenticated())
	assert.True(t, NewPrincipal(&User{ID: 1, FirstName: "Jane", LastName: "Doe"}).Authenticated())
}
