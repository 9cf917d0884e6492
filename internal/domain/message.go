package domain

import "time"

// Message is a text exchanged between two participants of a trip.
type Message struct {
	ID          string
	TripID      string
	SenderID    string
	RecipientID string
	Text        string
	IsRead      bool
	CreatedAt   time.Time
}
