package postgres

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// DriverProfileRepository is a PostgreSQL implementation of repository.DriverProfileRepository.
type DriverProfileRepository struct {
	q Querier
}

// NewDriverProfileRepository creates a new PostgreSQL driver profile repository.
func NewDriverProfileRepository(q Querier) *DriverProfileRepository {
	return &DriverProfileRepository{q: q}
}

// Create persists a new driver profile.
func (r *DriverProfileRepository) Create(ctx context.Context, p *domain.DriverProfile) error {
	query := `
		INSERT INTO driver_profiles (user_id, license_plate, driving_experience, car_brand, car_model,
			car_year, vin_number, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		p.UserID,
		p.LicensePlate,
		p.DrivingExperience,
		p.CarBrand,
		p.CarModel,
		p.CarYear,
		p.VINNumber,
		p.Verified,
		p.CreatedAt,
	)

	return mapError(err)
}

// GetByUserID retrieves the profile of a user.
func (r *DriverProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.DriverProfile, error) {
	query := `
		SELECT user_id, license_plate, driving_experience, car_brand, car_model, car_year,
			vin_number, verified, created_at
		FROM driver_profiles WHERE user_id = $1
	`

	var p domain.DriverProfile
	err := r.q.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.LicensePlate,
		&p.DrivingExperience,
		&p.CarBrand,
		&p.CarModel,
		&p.CarYear,
		&p.VINNumber,
		&p.Verified,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &p, nil
}

// SetVerified updates the verification flag of a profile.
func (r *DriverProfileRepository) SetVerified(ctx context.Context, userID string, verified bool) error {
	query := `UPDATE driver_profiles SET verified = $1 WHERE user_id = $2`

	result, err := r.q.ExecContext(ctx, query, verified, userID)
	if err != nil {
		return err
	}

	return expectOneRow(result)
}

// Ensure DriverProfileRepository implements repository.DriverProfileRepository.
var _ repository.DriverProfileRepository = (*DriverProfileRepository)(nil)
