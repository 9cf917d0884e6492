package postgres

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// CityRepository is a PostgreSQL implementation of repository.CityRepository.
type CityRepository struct {
	q Querier
}

// NewCityRepository creates a new PostgreSQL city repository.
func NewCityRepository(q Querier) *CityRepository {
	return &CityRepository{q: q}
}

// GetByID retrieves a city by ID.
func (r *CityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	query := `SELECT id, name, latitude, longitude FROM cities WHERE id = $1`

	var city domain.City
	err := r.q.QueryRowContext(ctx, query, id).Scan(&city.ID, &city.Name, &city.Latitude, &city.Longitude)
	if err != nil {
		return nil, mapError(err)
	}

	return &city, nil
}

// GetAll retrieves all cities ordered by name.
func (r *CityRepository) GetAll(ctx context.Context) ([]*domain.City, error) {
	query := `SELECT id, name, latitude, longitude FROM cities ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []*domain.City
	for rows.Next() {
		var city domain.City
		if err := rows.Scan(&city.ID, &city.Name, &city.Latitude, &city.Longitude); err != nil {
			return nil, err
		}
		cities = append(cities, &city)
	}

	return cities, rows.Err()
}

// Ensure CityRepository implements repository.CityRepository.
var _ repository.CityRepository = (*CityRepository)(nil)
