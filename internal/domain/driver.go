package domain

import "time"

// DriverProfile holds the vehicle details of a driver. One per user.
type DriverProfile struct {
	UserID            string
	LicensePlate      string // Canonical form, see package plate
	DrivingExperience int    // Years
	CarBrand          string
	CarModel          string
	CarYear           int
	VINNumber         string
	Verified          bool
	CreatedAt         time.Time
}
