package repository

import (
	"context"
	"errors"
	"fmt"

	"servicehub/internal/data/entity"
	"servicehub/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByBookingID(ctx context.Context, bookingID string) (*entity.Booking, error)
	FindByPaymentOrderID(ctx context.Context, paymentOrderID string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID string, status entity.BookingStatus) ([]*entity.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status entity.BookingStatus) error
	Reschedule(ctx context.Context, bookingID, date, timeWindow string) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, booking_id, user_id, service_id, package_id,
	service_name, package_name, scheduled_date, scheduled_time_window,
	service_address, amount_paid_minor_units, payment_order_id, status,
	created_at, updated_at
`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingID,
		&b.UserID,
		&b.ServiceID,
		&b.PackageID,
		&b.ServiceName,
		&b.PackageName,
		&b.ScheduledDate,
		&b.ScheduledTimeWindow,
		&b.ServiceAddress,
		&b.AmountPaidMinorUnits,
		&b.PaymentOrderID,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a booking. A unique-violation on booking_id comes back
// as ErrDuplicateBookingID so the materializer can retry with a new ID
// instead of overwriting.
func (br *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_id, user_id, service_id, package_id,
		                      service_name, package_name, scheduled_date,
		                      scheduled_time_window, service_address,
		                      amount_paid_minor_units, payment_order_id, status,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := br.db.Exec(ctx, query,
		booking.ID,
		booking.BookingID,
		booking.UserID,
		booking.ServiceID,
		booking.PackageID,
		booking.ServiceName,
		booking.PackageName,
		booking.ScheduledDate,
		booking.ScheduledTimeWindow,
		booking.ServiceAddress,
		booking.AmountPaidMinorUnits,
		booking.PaymentOrderID,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create booking %s: %w", booking.BookingID, ErrDuplicateBookingID)
		}

		br.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.BookingID),
			zap.String("payment_order_id", booking.PaymentOrderID),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingID, err)
	}

	return nil
}

func (br *bookingRepository) FindByBookingID(ctx context.Context, bookingID string) (*entity.Booking, error) {
	query := `SELECT` + bookingColumns + `FROM bookings WHERE booking_id = $1`

	booking, err := scanBooking(br.db.QueryRow(ctx, query, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}

	return booking, nil
}

func (br *bookingRepository) FindByPaymentOrderID(ctx context.Context, paymentOrderID string) (*entity.Booking, error) {
	query := `SELECT` + bookingColumns + `FROM bookings WHERE payment_order_id = $1`

	booking, err := scanBooking(br.db.QueryRow(ctx, query, paymentOrderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find booking by payment order %s: %w", paymentOrderID, err)
	}

	return booking, nil
}

func (br *bookingRepository) FindByUserID(ctx context.Context, userID string, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := `
		SELECT` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`

	rows, err := br.db.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("find bookings for user %s: %w", userID, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (br *bookingRepository) UpdateStatus(ctx context.Context, bookingID string, status entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE booking_id = $1
	`

	tag, err := br.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		return fmt.Errorf("update booking %s status: %w", bookingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s status: not found", bookingID)
	}

	return nil
}

func (br *bookingRepository) Reschedule(ctx context.Context, bookingID, date, timeWindow string) error {
	query := `
		UPDATE bookings
		SET scheduled_date = $2, scheduled_time_window = $3,
		    status = $4, updated_at = NOW()
		WHERE booking_id = $1
	`

	tag, err := br.db.Exec(ctx, query, bookingID, date, timeWindow, entity.BookingStatusRescheduled)
	if err != nil {
		return fmt.Errorf("reschedule booking %s: %w", bookingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reschedule booking %s: not found", bookingID)
	}

	return nil
}
