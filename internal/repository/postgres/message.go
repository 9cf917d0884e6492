package postgres

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// MessageRepository is a PostgreSQL implementation of repository.MessageRepository.
type MessageRepository struct {
	q Querier
}

// NewMessageRepository creates a new PostgreSQL message repository.
func NewMessageRepository(q Querier) *MessageRepository {
	return &MessageRepository{q: q}
}

// Create persists a new message.
func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, trip_id, sender_id, recipient_id, text, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		msg.ID, msg.TripID, msg.SenderID, msg.RecipientID, msg.Text, msg.IsRead, msg.CreatedAt)

	return mapError(err)
}

// ListByTripAndUser retrieves the trip messages the user sent or received.
func (r *MessageRepository) ListByTripAndUser(ctx context.Context, tripID, userID string) ([]*domain.Message, error) {
	query := `
		SELECT id, trip_id, sender_id, recipient_id, text, is_read, created_at
		FROM messages
		WHERE trip_id = $1 AND (sender_id = $2 OR recipient_id = $2)
		ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query, tripID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.TripID, &m.SenderID, &m.RecipientID, &m.Text, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}

	return messages, rows.Err()
}

// Ensure MessageRepository implements repository.MessageRepository.
var _ repository.MessageRepository = (*MessageRepository)(nil)
