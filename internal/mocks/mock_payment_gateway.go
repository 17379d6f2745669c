package mocks

import (
	"context"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentGateway struct {
	mock.Mock
	domain.PaymentGateway
}

func (m *MockPaymentGateway) SubmitPayment(ctx context.Context, bookingID string) (domain.GatewayOutcome, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(domain.GatewayOutcome), args.Error(1)
}
