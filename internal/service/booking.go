package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

const defaultCancellationReason = "not specified"

// BookingService handles seat reservations.
type BookingService struct {
	store         repository.Store
	notifications *NotificationService
	policy        BookingPolicy
	now           func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(store repository.Store, notifications *NotificationService, policy BookingPolicy) *BookingService {
	return &BookingService{
		store:         store,
		notifications: notifications,
		policy:        policy,
		now:           time.Now,
	}
}

// CreateBookingRequest contains the parameters for booking seats.
type CreateBookingRequest struct {
	TripID        string
	PassengerID   string
	SeatsCount    int
	LuggageWeight int
}

// CreateBooking reserves seats on a trip. The capacity check and the
// insert run under the trip lock so concurrent bookings cannot overbook.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.SeatsCount < 1 {
		return nil, ErrInvalidQuantity
	}

	if req.LuggageWeight < 0 {
		return nil, ErrInvalidLuggageWeight
	}

	out := s.notifications.newOutbox()

	var booking *domain.Booking
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		trip, err := tx.Trips().GetByIDForUpdate(ctx, req.TripID)
		if err != nil {
			return err
		}

		if trip.IsDrivenBy(req.PassengerID) {
			return ErrSelfBookingForbidden
		}

		if !trip.IsActive {
			return ErrTripInactive
		}

		bookings, err := tx.Bookings().ListByTrip(ctx, trip.ID)
		if err != nil {
			return err
		}

		if req.SeatsCount > FreeSeats(trip, bookings) {
			return ErrInsufficientCapacity
		}

		passenger, err := tx.Users().GetByID(ctx, req.PassengerID)
		if err != nil {
			return err
		}

		booking = &domain.Booking{
			ID:            uuid.New().String(),
			TripID:        trip.ID,
			PassengerID:   passenger.ID,
			SeatsCount:    req.SeatsCount,
			LuggageWeight: req.LuggageWeight,
			TotalPrice:    trip.PricePerSeat.Mul(decimal.NewFromInt(int64(req.SeatsCount))),
			Status:        s.policy.initialStatus(),
			CreatedAt:     s.now(),
		}

		if err := tx.Bookings().Create(ctx, booking); err != nil {
			return err
		}

		title, verb := "New booking", "booked"
		if booking.Status == domain.BookingStatusPending {
			title, verb = "New booking request", "requested"
		}

		_, err = out.emit(ctx, tx, EmitRequest{
			UserID:    trip.DriverID,
			Type:      domain.NotificationBooking,
			Title:     title,
			Message:   fmt.Sprintf("%s %s %d seat(s) on your trip", passenger.Name, verb, booking.SeatsCount),
			TripID:    trip.ID,
			BookingID: booking.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	out.flush(ctx)
	return booking, nil
}

// CancelBookingRequest contains the parameters for cancelling a booking.
type CancelBookingRequest struct {
	BookingID string
	ActorID   string
	Reason    string // Stored on the booking; defaults to "not specified"
	Comment   string // Only appended to the driver's notification
}

// CancelBooking cancels a booking on behalf of its passenger.
func (s *BookingService) CancelBooking(ctx context.Context, req CancelBookingRequest) (*domain.Booking, error) {
	reason := req.Reason
	if reason == "" {
		reason = defaultCancellationReason
	}

	out := s.notifications.newOutbox()

	var booking *domain.Booking
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		b, err := tx.Bookings().GetByID(ctx, req.BookingID)
		if err != nil {
			return err
		}

		// Trip first, then booking, same as CancelTrip and driver decisions.
		trip, err := tx.Trips().GetByIDForUpdate(ctx, b.TripID)
		if err != nil {
			return err
		}

		booking, err = tx.Bookings().GetByIDForUpdate(ctx, req.BookingID)
		if err != nil {
			return err
		}

		if booking.PassengerID != req.ActorID {
			return ErrNotOwner
		}

		if booking.Status == domain.BookingStatusCancelled {
			return ErrAlreadyCancelled
		}

		err = tx.Bookings().UpdateStatus(ctx, booking.ID, booking.Status, domain.BookingStatusCancelled, reason)
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrAlreadyCancelled
		}
		if err != nil {
			return err
		}
		booking.Status = domain.BookingStatusCancelled
		booking.CancellationReason = reason

		passenger, err := tx.Users().GetByID(ctx, booking.PassengerID)
		if err != nil {
			return err
		}

		message := fmt.Sprintf("%s cancelled a booking of %d seat(s). Reason: %s",
			passenger.Name, booking.SeatsCount, reason)
		if req.Comment != "" {
			message += "\nComment: " + req.Comment
		}

		_, err = out.emit(ctx, tx, EmitRequest{
			UserID:    trip.DriverID,
			Type:      domain.NotificationCancellation,
			Title:     "Booking cancelled",
			Message:   message,
			TripID:    trip.ID,
			BookingID: booking.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	out.flush(ctx)
	return booking, nil
}

// ConfirmBooking approves a pending booking. Capacity is checked again
// because pending bookings hold no seats.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, actorID string) (*domain.Booking, error) {
	out := s.notifications.newOutbox()

	var booking *domain.Booking
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		trip, b, err := s.lockForDecision(ctx, tx, bookingID, actorID)
		if err != nil {
			return err
		}

		if !b.CanTransitionTo(domain.BookingStatusConfirmed) {
			return ErrBookingNotPending
		}

		if !trip.IsActive {
			return ErrTripInactive
		}

		bookings, err := tx.Bookings().ListByTrip(ctx, trip.ID)
		if err != nil {
			return err
		}

		if b.SeatsCount > FreeSeats(trip, bookings) {
			return ErrInsufficientCapacity
		}

		if err := tx.Bookings().UpdateStatus(ctx, b.ID, domain.BookingStatusPending, domain.BookingStatusConfirmed, ""); err != nil {
			return err
		}
		b.Status = domain.BookingStatusConfirmed
		booking = b

		route, err := routeName(ctx, tx, trip)
		if err != nil {
			return err
		}

		_, err = out.emit(ctx, tx, EmitRequest{
			UserID:    b.PassengerID,
			Type:      domain.NotificationBooking,
			Title:     "Booking confirmed",
			Message:   fmt.Sprintf("Your booking of %d seat(s) on trip %s was confirmed", b.SeatsCount, route),
			TripID:    trip.ID,
			BookingID: b.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	out.flush(ctx)
	return booking, nil
}

// RejectBookingRequest contains the parameters for rejecting a pending booking.
type RejectBookingRequest struct {
	BookingID string
	ActorID   string
	Reason    string
}

// RejectBooking declines a pending booking.
func (s *BookingService) RejectBooking(ctx context.Context, req RejectBookingRequest) (*domain.Booking, error) {
	reason := req.Reason
	if reason == "" {
		reason = "rejected by driver"
	}

	out := s.notifications.newOutbox()

	var booking *domain.Booking
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		trip, b, err := s.lockForDecision(ctx, tx, req.BookingID, req.ActorID)
		if err != nil {
			return err
		}

		if b.Status != domain.BookingStatusPending {
			return ErrBookingNotPending
		}

		if err := tx.Bookings().UpdateStatus(ctx, b.ID, domain.BookingStatusPending, domain.BookingStatusCancelled, reason); err != nil {
			return err
		}
		b.Status = domain.BookingStatusCancelled
		b.CancellationReason = reason
		booking = b

		route, err := routeName(ctx, tx, trip)
		if err != nil {
			return err
		}

		_, err = out.emit(ctx, tx, EmitRequest{
			UserID:    b.PassengerID,
			Type:      domain.NotificationCancellation,
			Title:     "Booking rejected",
			Message:   fmt.Sprintf("Your booking request on trip %s was rejected. Reason: %s", route, reason),
			TripID:    trip.ID,
			BookingID: b.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	out.flush(ctx)
	return booking, nil
}

// lockForDecision locks the trip and then the booking, in that order, and
// checks that actorID drives the trip.
func (s *BookingService) lockForDecision(ctx context.Context, tx repository.Repositories, bookingID, actorID string) (*domain.Trip, *domain.Booking, error) {
	b, err := tx.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	trip, err := tx.Trips().GetByIDForUpdate(ctx, b.TripID)
	if err != nil {
		return nil, nil, err
	}

	if !trip.IsDrivenBy(actorID) {
		return nil, nil, ErrNotOwner
	}

	b, err = tx.Bookings().GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	return trip, b, nil
}

// ListPassengerBookings returns a passenger's bookings, newest first.
// With activeOnly set, cancelled bookings are left out.
func (s *BookingService) ListPassengerBookings(ctx context.Context, passengerID string, activeOnly bool) ([]*domain.Booking, error) {
	bookings, err := s.store.Bookings().ListByPassenger(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	if !activeOnly {
		return bookings, nil
	}

	active := bookings[:0]
	for _, b := range bookings {
		if b.Status != domain.BookingStatusCancelled {
			active = append(active, b)
		}
	}
	return active, nil
}

// routeName renders "Origin - Destination" for notification texts.
func routeName(ctx context.Context, tx repository.Repositories, trip *domain.Trip) (string, error) {
	origin, err := tx.Cities().GetByID(ctx, trip.OriginID)
	if err != nil {
		return "", fmt.Errorf("origin city: %w", err)
	}

	destination, err := tx.Cities().GetByID(ctx, trip.DestinationID)
	if err != nil {
		return "", fmt.Errorf("destination city: %w", err)
	}

	return origin.Name + " - " + destination.Name, nil
}
