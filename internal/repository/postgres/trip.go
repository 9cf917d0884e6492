package postgres

import (
	"context"
	"fmt"
	"strings"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

const tripColumns = `id, driver_id, origin_id, destination_id, departure_date, departure_time,
		price_per_seat, available_seats, luggage_capacity, is_active, created_at, updated_at`

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(q Querier) *TripRepository {
	return &TripRepository{q: q}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.DriverID,
		trip.OriginID,
		trip.DestinationID,
		trip.DepartureDate,
		trip.DepartureTime,
		trip.PricePerSeat,
		trip.AvailableSeats,
		trip.LuggageCapacity,
		trip.IsActive,
		trip.CreatedAt,
		trip.UpdatedAt,
	)

	return mapError(err)
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	return trip, nil
}

// GetByIDForUpdate retrieves a trip and holds a row lock on it.
func (r *TripRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 FOR UPDATE`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	return trip, nil
}

// Search retrieves trips matching the filter.
func (r *TripRepository) Search(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	var (
		conditions []string
		args       []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if filter.OriginID != "" {
		add("origin_id = $%d", filter.OriginID)
	}
	if filter.DestinationID != "" {
		add("destination_id = $%d", filter.DestinationID)
	}
	if !filter.Date.IsZero() {
		add("departure_date = $%d", filter.Date)
	}
	if !filter.FromDate.IsZero() {
		add("departure_date >= $%d", filter.FromDate)
	}
	if filter.MinPrice != nil {
		add("price_per_seat >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price_per_seat <= $%d", *filter.MaxPrice)
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + tripColumns + ` FROM trips`)
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}

	switch filter.Sort {
	case repository.TripSortPriceAsc:
		b.WriteString(" ORDER BY price_per_seat ASC, departure_date, departure_time")
	case repository.TripSortPriceDesc:
		b.WriteString(" ORDER BY price_per_seat DESC, departure_date, departure_time")
	default:
		b.WriteString(" ORDER BY departure_date, departure_time")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))

	return r.queryTrips(ctx, b.String(), args...)
}

// ListByDriver retrieves every trip of a driver, latest departure first.
func (r *TripRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + ` FROM trips
		WHERE driver_id = $1
		ORDER BY departure_date DESC, departure_time DESC
	`

	return r.queryTrips(ctx, query, driverID)
}

// Update updates the mutable fields of an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET departure_date = $1, departure_time = $2, price_per_seat = $3, available_seats = $4,
			luggage_capacity = $5, is_active = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.q.ExecContext(ctx, query,
		trip.DepartureDate,
		trip.DepartureTime,
		trip.PricePerSeat,
		trip.AvailableSeats,
		trip.LuggageCapacity,
		trip.IsActive,
		trip.UpdatedAt,
		trip.ID,
	)
	if err != nil {
		return mapError(err)
	}

	return expectOneRow(result)
}

func (r *TripRepository) queryTrips(ctx context.Context, query string, args ...any) ([]*domain.Trip, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

func scanTrip(s scanner) (*domain.Trip, error) {
	var trip domain.Trip
	err := s.Scan(
		&trip.ID,
		&trip.DriverID,
		&trip.OriginID,
		&trip.DestinationID,
		&trip.DepartureDate,
		&trip.DepartureTime,
		&trip.PricePerSeat,
		&trip.AvailableSeats,
		&trip.LuggageCapacity,
		&trip.IsActive,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &trip, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
