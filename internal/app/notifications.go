package app

import (
	"net/http"
	"strings"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

var notificationTemplates = map[booking.NotificationKind]string{
	booking.NotificationConfirmationSent: "booking_confirmed.tmpl",
	booking.NotificationPaymentFailed:    "payment_failed.tmpl",
}

// dispatchNotifications renders the outcome's notifications for the response
// and mails the ones meant for the inbox. Mail goes out in the background and
// may be lost.
func (app *Application) dispatchNotifications(
	r *http.Request,
	principal *domain.Principal,
	outcome booking.Outcome) []api.Notification {

	logger := app.contextGetLogger(r)
	rendered := make([]api.Notification, 0, len(outcome.Notifications))

	for _, n := range outcome.Notifications {
		rendered = append(rendered, api.Notification{
			Kind:        string(n.Kind),
			Title:       n.Title,
			Description: n.Description,
		})

		if !n.Mailable() || !principal.Authenticated() {
			continue
		}

		tmpl := notificationTemplates[n.Kind]
		data := mailData(principal, n, outcome.Booking)
		recipient := principal.Email

		app.background(logger, func() {
			err := app.mailer.Send(recipient, tmpl, data)
			if err != nil {
				logger.Error("failed to send notification email", "error", err, "kind", n.Kind, "booking_id", n.BookingID)
				return
			}

			logger.Info("notification email sent", "kind", n.Kind, "booking_id", n.BookingID)
		})
	}

	return rendered
}

func mailData(principal *domain.Principal, n booking.Notification, receipt *domain.BookingRecord) map[string]any {
	data := map[string]any{
		"Name":       principal.Name,
		"MovieTitle": n.MovieTitle,
		"Amount":     n.Amount.String(),
		"Currency":   domain.Currency,
		"BookingID":  n.BookingID,
	}

	if receipt != nil {
		data["Reference"] = receipt.Reference()
		data["ShowDate"] = receipt.ShowDate.Format(domain.DateLayout)
		data["ShowTime"] = receipt.ShowTime
		data["Seats"] = strings.Join(receipt.Seats, ", ")
	}

	return data
}
