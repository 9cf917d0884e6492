package domain

import "time"

// NotificationType represents the kind of user-facing notification.
type NotificationType string

const (
	NotificationBooking      NotificationType = "booking"
	NotificationCancellation NotificationType = "cancellation"
	NotificationTripUpdate   NotificationType = "trip_update"
	NotificationMessage      NotificationType = "message"
)

// Notification is a persisted event record addressed to one user.
// TripID and BookingID are back-references for traceability only.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	IsRead    bool
	TripID    string // Optional
	BookingID string // Optional
	CreatedAt time.Time
}
