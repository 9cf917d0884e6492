package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepartureTimeLayout is the wall-clock layout of Trip.DepartureTime.
const DepartureTimeLayout = "15:04"

// Trip represents a scheduled intercity ride published by a driver.
type Trip struct {
	ID              string
	DriverID        string
	OriginID        string
	DestinationID   string
	DepartureDate   time.Time // Date only, midnight UTC
	DepartureTime   string    // HH:MM
	PricePerSeat    decimal.Decimal
	AvailableSeats  int
	LuggageCapacity int // In kilograms
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DepartsAt combines the departure date and time into a single instant.
func (t *Trip) DepartsAt() time.Time {
	clock, err := time.Parse(DepartureTimeLayout, t.DepartureTime)
	if err != nil {
		return t.DepartureDate
	}
	y, m, d := t.DepartureDate.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

// IsDrivenBy reports whether userID is the trip's driver.
func (t *Trip) IsDrivenBy(userID string) bool {
	return t.DriverID == userID
}
