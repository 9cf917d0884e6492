package repository

import (
	"context"

	"rideshare/internal/domain"
)

// MessageRepository defines the persistence operations for trip messages.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, msg *domain.Message) error

	// ListByTripAndUser retrieves the trip messages the user sent or received,
	// oldest first.
	ListByTripAndUser(ctx context.Context, tripID, userID string) ([]*domain.Message, error)
}
