package service

import (
	"testing"

	"rideshare/internal/domain"
)

func TestBookedSeats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bookings []*domain.Booking
		want     int
	}{
		{"no bookings", nil, 0},
		{"only confirmed count", []*domain.Booking{
			{SeatsCount: 2, Status: domain.BookingStatusConfirmed},
			{SeatsCount: 1, Status: domain.BookingStatusPending},
			{SeatsCount: 3, Status: domain.BookingStatusCancelled},
			{SeatsCount: 1, Status: domain.BookingStatusConfirmed},
		}, 3},
		{"all cancelled", []*domain.Booking{
			{SeatsCount: 4, Status: domain.BookingStatusCancelled},
		}, 0},
	}

	for _, tt := range tests {
		if got := BookedSeats(tt.bookings); got != tt.want {
			t.Errorf("%s: BookedSeats = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestFreeSeats(t *testing.T) {
	t.Parallel()

	trip := &domain.Trip{AvailableSeats: 3}
	bookings := []*domain.Booking{{SeatsCount: 2, Status: domain.BookingStatusConfirmed}}

	if got := FreeSeats(trip, bookings); got != 1 {
		t.Fatalf("expected 1 free seat, got %d", got)
	}

	if got := FreeSeats(trip, nil); got != 3 {
		t.Fatalf("expected 3 free seats without bookings, got %d", got)
	}
}
