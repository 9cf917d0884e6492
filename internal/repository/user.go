package repository

import (
	"context"

	"rideshare/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create adds a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByPhone retrieves a user by phone number.
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)

	// UpdateRole changes the role of a user.
	UpdateRole(ctx context.Context, id string, role domain.UserRole) error
}

// DriverProfileRepository defines the persistence operations for driver profiles.
type DriverProfileRepository interface {
	// Create persists a new profile. Returns ErrConflict if the user already has one.
	Create(ctx context.Context, profile *domain.DriverProfile) error

	// GetByUserID retrieves the profile of a user.
	GetByUserID(ctx context.Context, userID string) (*domain.DriverProfile, error)

	// SetVerified updates the verification flag.
	SetVerified(ctx context.Context, userID string, verified bool) error
}
