package domain

import "time"

// UserRole is the capability a user holds in the marketplace.
type UserRole string

const (
	UserRoleRider  UserRole = "RIDER"
	UserRoleDriver UserRole = "DRIVER"
)

// User represents a marketplace member. Every user can book seats;
// only drivers can publish trips.
type User struct {
	ID        string
	Name      string
	Phone     string
	Role      UserRole
	CreatedAt time.Time
}

// IsDriver reports whether the user holds the driver role.
func (u *User) IsDriver() bool {
	return u.Role == UserRoleDriver
}
