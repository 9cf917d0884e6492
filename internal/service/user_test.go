package service

import (
	"context"
	"errors"
	"testing"

	"rideshare/internal/domain"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, DefaultBookingPolicy())

	user, err := env.users.Register(context.Background(), " Anna ", "+380501234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Anna" || user.Role != domain.UserRoleRider {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := env.users.Register(context.Background(), "Other", "+380501234567"); !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}

	got, err := env.users.GetUser(context.Background(), user.ID)
	if err != nil || got.Phone != "+380501234567" {
		t.Fatalf("unexpected lookup: %+v, %v", got, err)
	}
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, DefaultBookingPolicy())

	tests := []struct {
		name, userName, phone string
		wantErr               error
	}{
		{"empty name", "", "+380501234567", ErrInvalidName},
		{"letters in phone", "Anna", "+38050abc4567", ErrInvalidPhone},
		{"short phone", "Anna", "12345", ErrInvalidPhone},
	}

	for _, tt := range tests {
		if _, err := env.users.Register(context.Background(), tt.userName, tt.phone); !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
		}
	}
}
