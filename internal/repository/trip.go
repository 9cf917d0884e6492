package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rideshare/internal/domain"
)

// TripSort orders trip search results.
type TripSort string

const (
	TripSortDate      TripSort = "date"
	TripSortPriceAsc  TripSort = "price_asc"
	TripSortPriceDesc TripSort = "price_desc"
)

// TripFilter narrows a trip search. Zero values mean "no constraint".
type TripFilter struct {
	OriginID      string
	DestinationID string
	Date          time.Time // Exact departure date
	FromDate      time.Time // Departure date on or after
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	ActiveOnly    bool
	Sort          TripSort
	Limit         int
}

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetByIDForUpdate retrieves a trip and locks it until the surrounding
	// transaction ends. Outside a transaction it behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error)

	// Search retrieves trips matching the filter.
	Search(ctx context.Context, filter TripFilter) ([]*domain.Trip, error)

	// ListByDriver retrieves every trip of a driver, latest departure first.
	ListByDriver(ctx context.Context, driverID string) ([]*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error
}
