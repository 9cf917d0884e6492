package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

const bookingColumns = `id, trip_id, passenger_id, seats_count, luggage_weight, total_price,
		status, cancellation_reason, created_at`

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(q Querier) *BookingRepository {
	return &BookingRepository{q: q}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.TripID,
		booking.PassengerID,
		booking.SeatsCount,
		booking.LuggageWeight,
		booking.TotalPrice,
		booking.Status,
		nullString(booking.CancellationReason),
		booking.CreatedAt,
	)

	return mapError(err)
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	return booking, nil
}

// GetByIDForUpdate retrieves a booking and holds a row lock on it.
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	return booking, nil
}

// ListByTrip retrieves every booking on a trip.
func (r *BookingRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE trip_id = $1 ORDER BY created_at`

	return r.queryBookings(ctx, query, tripID)
}

// ListByPassenger retrieves a passenger's bookings, newest first.
func (r *BookingRepository) ListByPassenger(ctx context.Context, passengerID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE passenger_id = $1 ORDER BY created_at DESC`

	return r.queryBookings(ctx, query, passengerID)
}

// ListConfirmedByDriver retrieves confirmed bookings on every trip of a driver.
func (r *BookingRepository) ListConfirmedByDriver(ctx context.Context, driverID string) ([]*domain.Booking, error) {
	query := `
		SELECT b.id, b.trip_id, b.passenger_id, b.seats_count, b.luggage_weight, b.total_price,
			b.status, b.cancellation_reason, b.created_at
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		WHERE t.driver_id = $1 AND b.status = $2
		ORDER BY b.created_at DESC
	`

	return r.queryBookings(ctx, query, driverID, domain.BookingStatusConfirmed)
}

// UpdateStatus moves a booking between statuses. Zero affected rows means
// another transaction changed the status first.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason string) error {
	query := `UPDATE bookings SET status = $1, cancellation_reason = $2 WHERE id = $3 AND status = $4`

	result, err := r.q.ExecContext(ctx, query, to, nullString(reason), id, from)
	if err != nil {
		return mapError(err)
	}

	err = expectOneRow(result)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.ErrStaleStatus
	}
	return err
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func scanBooking(s scanner) (*domain.Booking, error) {
	var booking domain.Booking
	var reason sql.NullString

	err := s.Scan(
		&booking.ID,
		&booking.TripID,
		&booking.PassengerID,
		&booking.SeatsCount,
		&booking.LuggageWeight,
		&booking.TotalPrice,
		&booking.Status,
		&reason,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reason.Valid {
		booking.CancellationReason = reason.String
	}

	return &booking, nil
}

// Ensure BookingRepository implements repository.BookingRepository.
var _ repository.BookingRepository = (*BookingRepository)(nil)
