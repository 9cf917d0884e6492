// Package queue publishes domain events to RabbitMQ.
package queue

import (
	"context"
	"time"

	"rideshare/internal/domain"
)

// NotificationsQueue is the durable queue notification events are routed to.
const NotificationsQueue = "notifications.created"

// NotificationEvent is the wire form of a committed notification.
type NotificationEvent struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	TripID         string    `json:"trip_id,omitempty"`
	BookingID      string    `json:"booking_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewNotificationEvent builds the event for n.
func NewNotificationEvent(n *domain.Notification) NotificationEvent {
	return NotificationEvent{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		TripID:         n.TripID,
		BookingID:      n.BookingID,
		CreatedAt:      n.CreatedAt,
	}
}

// Publisher delivers notification events to subscribers.
type Publisher interface {
	PublishNotification(ctx context.Context, event NotificationEvent) error
	Close() error
}

// NoopPublisher discards every event. Used when RabbitMQ is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishNotification(context.Context, NotificationEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
