package repository

import (
	"context"

	"rideshare/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetByIDForUpdate retrieves a booking and locks it until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error)

	// ListByTrip retrieves every booking on a trip regardless of status.
	ListByTrip(ctx context.Context, tripID string) ([]*domain.Booking, error)

	// ListByPassenger retrieves a passenger's bookings, newest first.
	ListByPassenger(ctx context.Context, passengerID string) ([]*domain.Booking, error)

	// ListConfirmedByDriver retrieves confirmed bookings across all trips of a driver.
	ListConfirmedByDriver(ctx context.Context, driverID string) ([]*domain.Booking, error)

	// UpdateStatus moves a booking from status from to status to and sets
	// its cancellation reason. It returns ErrStaleStatus when the booking
	// is no longer in status from.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason string) error
}
