package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/plate"
	"rideshare/internal/repository"
)

const (
	maxDrivingExperience = 60
	minCarYear           = 1980
	vinLength            = 17
)

// DriverService handles driver onboarding.
type DriverService struct {
	store repository.Store
	now   func() time.Time
}

// NewDriverService creates a new DriverService.
func NewDriverService(store repository.Store) *DriverService {
	return &DriverService{store: store, now: time.Now}
}

// BecomeDriverRequest contains the vehicle details of a new driver.
type BecomeDriverRequest struct {
	UserID            string
	LicensePlate      string // Any accepted spelling; stored normalized
	DrivingExperience int
	CarBrand          string
	CarModel          string
	CarYear           int
	VINNumber         string
}

// BecomeDriver creates an unverified driver profile and grants the user
// the driver role in one transaction.
func (s *DriverService) BecomeDriver(ctx context.Context, req BecomeDriverRequest) (*domain.DriverProfile, error) {
	licensePlate, err := plate.Normalize(req.LicensePlate)
	if err != nil {
		return nil, err
	}

	if req.DrivingExperience < 0 || req.DrivingExperience > maxDrivingExperience {
		return nil, ErrInvalidDrivingExperience
	}

	brand, model := strings.TrimSpace(req.CarBrand), strings.TrimSpace(req.CarModel)
	if brand == "" || model == "" {
		return nil, ErrInvalidCarDetails
	}

	now := s.now()
	if req.CarYear < minCarYear || req.CarYear > now.Year() {
		return nil, ErrInvalidCarYear
	}

	vin := strings.ToUpper(strings.TrimSpace(req.VINNumber))
	if len(vin) != vinLength {
		return nil, ErrInvalidVIN
	}

	profile := &domain.DriverProfile{
		UserID:            req.UserID,
		LicensePlate:      licensePlate,
		DrivingExperience: req.DrivingExperience,
		CarBrand:          brand,
		CarModel:          model,
		CarYear:           req.CarYear,
		VINNumber:         vin,
		Verified:          false,
		CreatedAt:         now,
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		user, err := tx.Users().GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}

		if err := tx.DriverProfiles().Create(ctx, profile); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrAlreadyDriver
			}
			return err
		}

		return tx.Users().UpdateRole(ctx, user.ID, domain.UserRoleDriver)
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfile returns the driver profile of a user.
func (s *DriverService) GetProfile(ctx context.Context, userID string) (*domain.DriverProfile, error) {
	return s.store.DriverProfiles().GetByUserID(ctx, userID)
}

// VerifyDriver marks a driver profile as verified.
func (s *DriverService) VerifyDriver(ctx context.Context, userID string) error {
	return s.store.DriverProfiles().SetVerified(ctx, userID, true)
}
