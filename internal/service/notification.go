package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/queue"
	"rideshare/internal/repository"
)

// NotificationService records user notifications and dispatches them once
// the transaction that produced them has committed.
type NotificationService struct {
	store     repository.Store
	publisher queue.Publisher
	now       func() time.Time
}

// NewNotificationService creates a new NotificationService. A nil publisher
// disables event publishing.
func NewNotificationService(store repository.Store, publisher queue.Publisher) *NotificationService {
	if publisher == nil {
		publisher = queue.NoopPublisher{}
	}
	return &NotificationService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// EmitRequest contains the parameters for emitting a notification.
type EmitRequest struct {
	UserID    string
	Type      domain.NotificationType
	Title     string
	Message   string
	TripID    string // Optional
	BookingID string // Optional
}

// outbox collects the notifications written inside one transaction.
// flush must only be called after the transaction committed.
type outbox struct {
	svc     *NotificationService
	pending []*domain.Notification
}

func (s *NotificationService) newOutbox() *outbox {
	return &outbox{svc: s}
}

// emit writes the notification through the transaction's repositories.
func (o *outbox) emit(ctx context.Context, tx repository.Repositories, req EmitRequest) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		IsRead:    false,
		TripID:    req.TripID,
		BookingID: req.BookingID,
		CreatedAt: o.svc.now(),
	}

	if err := tx.Notifications().Create(ctx, n); err != nil {
		return nil, err
	}

	o.pending = append(o.pending, n)
	return n, nil
}

func (o *outbox) flush(ctx context.Context) {
	for _, n := range o.pending {
		o.svc.dispatch(ctx, n)
	}
	o.pending = nil
}

// dispatch logs the notification and publishes it. Failures are logged
// only: the notification is already stored.
func (s *NotificationService) dispatch(ctx context.Context, n *domain.Notification) {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		n.Type, n.UserID, n.Title, n.Message)

	if err := s.publisher.PublishNotification(ctx, queue.NewNotificationEvent(n)); err != nil {
		log.Printf("[NOTIFICATION] publish failed for %s: %v", n.ID, err)
	}
}

// Emit stores a single unread notification and dispatches it.
func (s *NotificationService) Emit(ctx context.Context, req EmitRequest) (*domain.Notification, error) {
	out := s.newOutbox()

	var n *domain.Notification
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		var err error
		n, err = out.emit(ctx, tx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	out.flush(ctx)
	return n, nil
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*domain.Notification, error) {
	return s.store.Notifications().ListByUser(ctx, userID, unreadOnly, limit)
}

// UnreadCount returns the number of unread notifications of a user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.Notifications().CountUnread(ctx, userID)
}

// MarkRead marks a notification as read. Marking an already read
// notification succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, actorID string) error {
	n, err := s.store.Notifications().GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if n.UserID != actorID {
		return ErrNotOwner
	}

	if n.IsRead {
		return nil
	}

	return s.store.Notifications().MarkRead(ctx, notificationID)
}

// MarkAllRead marks every unread notification of a user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.Notifications().MarkAllRead(ctx, userID)
}
