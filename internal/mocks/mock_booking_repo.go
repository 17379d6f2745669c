package mocks

import (
	"context"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.BookingRecord) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockBookingRepo) GetByIdAndUserId(ctx context.Context, id string, userId int) (*domain.BookingRecord, error) {
	args := m.Called(ctx, id, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRecord), args.Error(1)
}

func (m *MockBookingRepo) GetByUserId(
	ctx context.Context,
	userId int,
	pagination domain.Pagination) ([]domain.BookingRecord, *domain.Metadata, error) {

	args := m.Called(ctx, userId, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.BookingRecord), args.Get(1).(*domain.Metadata), args.Error(2)
}
