package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/metinatakli/cinex-booking/internal/booking"

// PaymentsMetric counts resolved payment attempts, one data point per
// PaymentStatusKey value.
const (
	PaymentsMetric   = "bookings.payments"
	PaymentStatusKey = "status"
)

// PaymentContext carries what the payment step needs to describe the booking
// to the user.
type PaymentContext struct {
	MovieTitle string
	Amount     decimal.Decimal
}

type PaymentResult struct {
	Status           domain.PaymentStatus
	GatewayReference string
	Notification     Notification
	Err              error
}

func (r PaymentResult) Paid() bool {
	return r.Status == domain.PaymentStatusPaid
}

// Manager persists booking records and resolves their payment.
type Manager struct {
	bookings domain.BookingRepository
	gateway  domain.PaymentGateway
	logger   *slog.Logger
	newID    func() string
	payments metric.Int64Counter
}

func NewManager(bookings domain.BookingRepository, gateway domain.PaymentGateway, logger *slog.Logger) *Manager {
	payments, err := otel.Meter(instrumentationName).Int64Counter(
		PaymentsMetric,
		metric.WithDescription("Resolved payment attempts by outcome"),
	)
	if err != nil {
		logger.Warn("failed to create payments counter", "error", err)
	}

	return &Manager{
		bookings: bookings,
		gateway:  gateway,
		logger:   logger,
		newID:    uuid.NewString,
		payments: payments,
	}
}

func (m *Manager) CreateBooking(ctx context.Context, draft *domain.BookingDraft, principal *domain.Principal) (string, error) {
	if !principal.Authenticated() {
		return "", domain.ErrAuthRequired
	}

	if draft == nil {
		return "", domain.ErrNoActiveDraft
	}

	if n := len(draft.Seats); n < domain.MinSeats || n > domain.MaxSeats {
		return "", domain.ErrInvalidSeatCount
	}

	record := domain.NewBookingRecord(m.newID(), draft, principal)

	err := m.bookings.Create(ctx, record)
	if err != nil {
		m.logger.Error("failed to insert booking", "error", err, "user_id", principal.UserID)
		return "", fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	m.logger.Info("booking created",
		"booking_id", record.ID,
		"user_id", record.UserID,
		"movie_id", record.MovieID,
		"seats", len(record.Seats),
	)

	return record.ID, nil
}

// ProcessPayment drives a pending record to paid or failed. It must be called
// once per created record; a record that is no longer pending is left as is.
func (m *Manager) ProcessPayment(ctx context.Context, bookingID string, pc PaymentContext) PaymentResult {
	logger := m.logger.With("booking_id", bookingID)

	outcome, err := m.gateway.SubmitPayment(ctx, bookingID)
	if err == nil && !outcome.Approved {
		err = fmt.Errorf("%w: %s", domain.ErrPaymentDeclined, outcome.Reason)
	}

	if err == nil {
		err = m.bookings.UpdatePaymentStatus(ctx, bookingID, domain.PaymentStatusPending, domain.PaymentStatusPaid)
		if err == nil {
			logger.Info("payment completed", "gateway_reference", outcome.Reference)
			m.record(ctx, domain.PaymentStatusPaid)

			return PaymentResult{
				Status:           domain.PaymentStatusPaid,
				GatewayReference: outcome.Reference,
				Notification:     confirmationSent(bookingID, pc),
			}
		}

		if errors.Is(err, domain.ErrPaymentAlreadyResolved) {
			logger.Warn("payment processed more than once")
			return PaymentResult{Status: domain.PaymentStatusFailed, Err: err}
		}

		err = fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	logger.Error("payment processing failed", "error", err)

	markErr := m.bookings.UpdatePaymentStatus(ctx, bookingID, domain.PaymentStatusPending, domain.PaymentStatusFailed)
	if markErr != nil {
		logger.Error("failed to mark booking payment as failed", "error", markErr)
	}

	m.record(ctx, domain.PaymentStatusFailed)

	return PaymentResult{
		Status:       domain.PaymentStatusFailed,
		Notification: paymentFailed(bookingID, pc),
		Err:          err,
	}
}

func (m *Manager) record(ctx context.Context, status domain.PaymentStatus) {
	if m.payments == nil {
		return
	}

	m.payments.Add(ctx, 1, metric.WithAttributes(attribute.String(PaymentStatusKey, string(status))))
}
