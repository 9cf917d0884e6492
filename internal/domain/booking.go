package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking represents a passenger's reservation of seats on a trip.
type Booking struct {
	ID                 string
	TripID             string
	PassengerID        string
	SeatsCount         int
	LuggageWeight      int             // In kilograms
	TotalPrice         decimal.Decimal // Frozen at creation
	Status             BookingStatus
	CancellationReason string
	CreatedAt          time.Time
}

// CanTransitionTo reports whether the booking may move to next.
// Cancelled is terminal; confirmed may only be cancelled.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	}
	return false
}
