package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rideshare/internal/domain"
)

func TestSendMessage(t *testing.T) {
	t.Parallel()

	env := standardEnv(t)
	env.addUser(t, "rider-3", "Petro", domain.UserRoleRider)
	trip := env.addTrip(t, "driver-1", 3, "100")
	env.book(t, trip.ID, "rider-1", 1)

	msg, err := env.messages.SendMessage(context.Background(), SendMessageRequest{
		TripID: trip.ID, SenderID: "rider-1", RecipientID: "driver-1", Text: "  Where do we meet?  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Text != "Where do we meet?" {
		t.Fatalf("expected trimmed text, got %q", msg.Text)
	}

	ns := env.notificationsOf(t, "driver-1")
	if ns[0].Type != domain.NotificationMessage || !strings.Contains(ns[0].Title, "Anna") {
		t.Fatalf("unexpected notification: %+v", ns[0])
	}

	if _, err := env.messages.SendMessage(context.Background(), SendMessageRequest{
		TripID: trip.ID, SenderID: "driver-1", RecipientID: "rider-1", Text: "At the station",
	}); err != nil {
		t.Fatalf("reply: %v", err)
	}

	thread, err := env.messages.ListMessages(context.Background(), trip.ID, "rider-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(thread) != 2 || thread[0].Text != "Where do we meet?" {
		t.Fatalf("expected 2 messages oldest first, got %+v", thread)
	}

	tests := []struct {
		name    string
		req     SendMessageRequest
		wantErr error
	}{
		{"empty", SendMessageRequest{TripID: trip.ID, SenderID: "rider-1", RecipientID: "driver-1", Text: "  "}, ErrEmptyMessage},
		{"outsider sender", SendMessageRequest{TripID: trip.ID, SenderID: "rider-3", RecipientID: "driver-1", Text: "hi"}, ErrNotParticipant},
		{"outsider recipient", SendMessageRequest{TripID: trip.ID, SenderID: "driver-1", RecipientID: "rider-3", Text: "hi"}, ErrNotParticipant},
		{"to self", SendMessageRequest{TripID: trip.ID, SenderID: "rider-1", RecipientID: "rider-1", Text: "hi"}, ErrNotParticipant},
	}
	for _, tt := range tests {
		if _, err := env.messages.SendMessage(context.Background(), tt.req); !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
		}
	}

	if _, err := env.messages.ListMessages(context.Background(), trip.ID, "rider-3"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("я", notificationPreviewLen+5)
	got := preview(long)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != notificationPreviewLen+3 {
		t.Fatalf("unexpected preview: %q", got)
	}

	if preview("short") != "short" {
		t.Fatal("short text must be kept")
	}
}
