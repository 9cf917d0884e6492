package repository

import (
	"context"

	"rideshare/internal/domain"
)

// CityRepository defines the read operations for cities.
type CityRepository interface {
	// GetByID retrieves a city by ID.
	GetByID(ctx context.Context, id string) (*domain.City, error)

	// GetAll retrieves all cities ordered by name.
	GetAll(ctx context.Context) ([]*domain.City, error)
}
