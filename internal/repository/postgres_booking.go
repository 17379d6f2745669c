package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

const bookingColumns = `id::text, user_id, movie_id, movie_title, show_date, show_time, seats,
	total_amount, payment_status, booking_status, created_at, updated_at`

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.BookingRecord) error {
	query := `
		INSERT INTO bookings (
			id,
			user_id,
			movie_id,
			movie_title,
			show_date,
			show_time,
			seats,
			total_amount,
			currency,
			payment_status,
			booking_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		booking.ID,
		booking.UserID,
		booking.MovieID,
		booking.MovieTitle,
		booking.ShowDate,
		booking.ShowTime,
		booking.Seats,
		booking.TotalAmount,
		domain.Currency,
		booking.PaymentStatus,
		booking.BookingStatus,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

// UpdatePaymentStatus moves a record from one payment status to another. It
// returns ErrPaymentAlreadyResolved when the record exists but is no longer in
// the expected status.
func (p *PostgresBookingRepository) UpdatePaymentStatus(
	ctx context.Context,
	id string,
	from, to domain.PaymentStatus) error {

	if !from.CanTransitionTo(to) {
		return fmt.Errorf("invalid payment transition %s -> %s", from, to)
	}

	query := `
		WITH updated AS (
			UPDATE bookings
			SET payment_status = $1, updated_at = NOW()
			WHERE id = $2 AND payment_status = $3
			RETURNING id
		)
		SELECT
			EXISTS (SELECT 1 FROM updated),
			EXISTS (SELECT 1 FROM bookings WHERE id = $2)
	`

	var updated, exists bool

	err := p.db.QueryRow(ctx, query, to, id, from).Scan(&updated, &exists)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrRecordNotFound
		}
		return err
	}

	switch {
	case updated:
		return nil
	case exists:
		return domain.ErrPaymentAlreadyResolved
	default:
		return domain.ErrRecordNotFound
	}
}

func (p *PostgresBookingRepository) GetByIdAndUserId(
	ctx context.Context,
	id string,
	userId int) (*domain.BookingRecord, error) {

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1 AND user_id = $2`, bookingColumns)

	var booking domain.BookingRecord

	err := scanBooking(p.db.QueryRow(ctx, query, id, userId), &booking)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetByUserId(
	ctx context.Context,
	userId int,
	pagination domain.Pagination) ([]domain.BookingRecord, *domain.Metadata, error) {

	query := fmt.Sprintf(`SELECT count(*) OVER(), %s
		FROM bookings
		WHERE user_id = $1
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, bookingColumns, pagination.SortColumn(), pagination.SortDirection())

	rows, err := p.db.Query(ctx, query, userId, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	bookings := make([]domain.BookingRecord, 0)

	for rows.Next() {
		var booking domain.BookingRecord

		err := rows.Scan(
			&totalRecords,
			&booking.ID,
			&booking.UserID,
			&booking.MovieID,
			&booking.MovieTitle,
			&booking.ShowDate,
			&booking.ShowTime,
			&booking.Seats,
			&booking.TotalAmount,
			&booking.PaymentStatus,
			&booking.BookingStatus,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func scanBooking(row pgx.Row, booking *domain.BookingRecord) error {
	return row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.MovieID,
		&booking.MovieTitle,
		&booking.ShowDate,
		&booking.ShowTime,
		&booking.Seats,
		&booking.TotalAmount,
		&booking.PaymentStatus,
		&booking.BookingStatus,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
}

// isInvalidID reports whether postgres rejected the id as a malformed uuid.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}
