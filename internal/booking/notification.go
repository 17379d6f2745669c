package booking

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type NotificationKind string

const (
	NotificationConfirmationSent NotificationKind = "confirmation_sent"
	NotificationPaymentFailed    NotificationKind = "payment_failed"
	NotificationBookingFailed    NotificationKind = "booking_failed"
	NotificationAuthRequired     NotificationKind = "auth_required"
)

// Notification is a user-facing message produced by a transition. Producing one
// has no side effect; rendering and delivery belong to the caller.
type Notification struct {
	Kind        NotificationKind
	Title       string
	Description string
	BookingID   string
	MovieTitle  string
	Amount      decimal.Decimal
}

// Mailable reports whether the notification should also reach the user's inbox.
func (n Notification) Mailable() bool {
	return n.Kind == NotificationConfirmationSent || n.Kind == NotificationPaymentFailed
}

func confirmationSent(bookingID string, pc PaymentContext) Notification {
	return Notification{
		Kind:        NotificationConfirmationSent,
		Title:       "Confirmation Email Sent!",
		Description: fmt.Sprintf("Your booking for %q has been confirmed. Check your inbox for details.", pc.MovieTitle),
		BookingID:   bookingID,
		MovieTitle:  pc.MovieTitle,
		Amount:      pc.Amount,
	}
}

func paymentFailed(bookingID string, pc PaymentContext) Notification {
	return Notification{
		Kind:        NotificationPaymentFailed,
		Title:       "Payment Failed",
		Description: "Payment processing failed. Please try again.",
		BookingID:   bookingID,
		MovieTitle:  pc.MovieTitle,
		Amount:      pc.Amount,
	}
}

func bookingFailed(movieTitle string, amount decimal.Decimal) Notification {
	return Notification{
		Kind:        NotificationBookingFailed,
		Title:       "Booking Failed",
		Description: "Failed to create booking. Please try again.",
		MovieTitle:  movieTitle,
		Amount:      amount,
	}
}

func authRequired() Notification {
	return Notification{
		Kind:        NotificationAuthRequired,
		Title:       "Authentication Required",
		Description: "Please sign in to book tickets.",
	}
}
