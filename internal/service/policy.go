package service

import "rideshare/internal/domain"

// BookingPolicy holds the marketplace rules that are business decisions
// rather than invariants.
type BookingPolicy struct {
	// RequireVerifiedDriver blocks trip creation for unverified drivers.
	RequireVerifiedDriver bool

	// MaxSeatsPerTrip caps the seats a trip may offer. 0 means no cap.
	MaxSeatsPerTrip int

	// InitialStatus is the status of new bookings: confirmed, or pending
	// when the driver approves each booking.
	InitialStatus domain.BookingStatus
}

// DefaultBookingPolicy returns the policy used when nothing is configured.
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{InitialStatus: domain.BookingStatusConfirmed}
}

func (p BookingPolicy) initialStatus() domain.BookingStatus {
	if p.InitialStatus == domain.BookingStatusPending {
		return domain.BookingStatusPending
	}
	return domain.BookingStatusConfirmed
}

func (p BookingPolicy) validSeatCount(seats int) bool {
	if seats < 1 {
		return false
	}
	return p.MaxSeatsPerTrip <= 0 || seats <= p.MaxSeatsPerTrip
}
