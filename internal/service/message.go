package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// notificationPreviewLen bounds the message text copied into a notification.
const notificationPreviewLen = 80

// MessageService handles messages between trip participants.
type MessageService struct {
	store         repository.Store
	notifications *NotificationService
	now           func() time.Time
}

// NewMessageService creates a new MessageService.
func NewMessageService(store repository.Store, notifications *NotificationService) *MessageService {
	return &MessageService{store: store, notifications: notifications, now: time.Now}
}

// SendMessageRequest contains the parameters for sending a message.
type SendMessageRequest struct {
	TripID      string
	SenderID    string
	RecipientID string
	Text        string
}

// SendMessage stores a message and notifies the recipient. Both parties
// must be the trip's driver or hold a booking on it.
func (s *MessageService) SendMessage(ctx context.Context, req SendMessageRequest) (*domain.Message, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if req.SenderID == req.RecipientID {
		return nil, ErrNotParticipant
	}

	out := s.notifications.newOutbox()

	var msg *domain.Message
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		trip, err := tx.Trips().GetByID(ctx, req.TripID)
		if err != nil {
			return err
		}

		bookings, err := tx.Bookings().ListByTrip(ctx, trip.ID)
		if err != nil {
			return err
		}

		if !isParticipant(trip, bookings, req.SenderID) || !isParticipant(trip, bookings, req.RecipientID) {
			return ErrNotParticipant
		}

		sender, err := tx.Users().GetByID(ctx, req.SenderID)
		if err != nil {
			return err
		}

		msg = &domain.Message{
			ID:          uuid.New().String(),
			TripID:      trip.ID,
			SenderID:    req.SenderID,
			RecipientID: req.RecipientID,
			Text:        text,
			CreatedAt:   s.now(),
		}

		if err := tx.Messages().Create(ctx, msg); err != nil {
			return err
		}

		_, err = out.emit(ctx, tx, EmitRequest{
			UserID:  req.RecipientID,
			Type:    domain.NotificationMessage,
			Title:   "New message from " + sender.Name,
			Message: preview(text),
			TripID:  trip.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	out.flush(ctx)
	return msg, nil
}

// ListMessages returns the trip messages the user sent or received, oldest first.
func (s *MessageService) ListMessages(ctx context.Context, tripID, userID string) ([]*domain.Message, error) {
	trip, err := s.store.Trips().GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.store.Bookings().ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	if !isParticipant(trip, bookings, userID) {
		return nil, ErrNotParticipant
	}

	return s.store.Messages().ListByTripAndUser(ctx, trip.ID, userID)
}

// isParticipant reports whether userID drives the trip or has booked it.
// Cancelled bookings still count so the parties can settle the cancellation.
func isParticipant(trip *domain.Trip, bookings []*domain.Booking, userID string) bool {
	if trip.IsDrivenBy(userID) {
		return true
	}
	for _, b := range bookings {
		if b.PassengerID == userID {
			return true
		}
	}
	return false
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= notificationPreviewLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:notificationPreviewLen]) + "..."
}
