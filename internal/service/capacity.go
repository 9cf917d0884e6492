package service

import "rideshare/internal/domain"

// BookedSeats returns the seats held by confirmed bookings.
// Pending and cancelled bookings hold nothing.
func BookedSeats(bookings []*domain.Booking) int {
	booked := 0
	for _, b := range bookings {
		if b.Status == domain.BookingStatusConfirmed {
			booked += b.SeatsCount
		}
	}
	return booked
}

// FreeSeats returns the seats of trip not held by confirmed bookings.
// bookings must be the trip's current booking set.
func FreeSeats(trip *domain.Trip, bookings []*domain.Booking) int {
	return trip.AvailableSeats - BookedSeats(bookings)
}
