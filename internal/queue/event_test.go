package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rideshare/internal/domain"
)

func TestNewNotificationEvent(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	n := &domain.Notification{
		ID:        "n-1",
		UserID:    "u-1",
		Type:      domain.NotificationBooking,
		Title:     "New booking",
		Message:   "Anna booked 2 seats",
		TripID:    "t-1",
		BookingID: "b-1",
		CreatedAt: created,
	}

	event := NewNotificationEvent(n)
	if event.NotificationID != "n-1" || event.UserID != "u-1" || event.Type != "booking" {
		t.Fatalf("unexpected event: %+v", event)
	}

	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["trip_id"] != "t-1" || decoded["booking_id"] != "b-1" {
		t.Fatalf("expected trace ids in payload, got %s", body)
	}
}

func TestNewNotificationEvent_OmitsEmptyReferences(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(NewNotificationEvent(&domain.Notification{ID: "n-2", UserID: "u-2"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["trip_id"]; ok {
		t.Fatalf("expected trip_id to be omitted, got %s", body)
	}
}

func TestNoopPublisher(t *testing.T) {
	t.Parallel()

	var p Publisher = NoopPublisher{}
	if err := p.PublishNotification(context.Background(), NotificationEvent{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
