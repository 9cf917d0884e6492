package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rideshare/internal/repository"
)

// Store is a PostgreSQL implementation of repository.Store.
type Store struct {
	db *sql.DB
	repositories
}

// NewStore creates a new PostgreSQL store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repositories: repositories{q: db}}
}

// RunInTx runs fn inside a single transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repositories) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(ctx, repositories{q: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// repositories binds every repository to one Querier.
type repositories struct {
	q Querier
}

func (r repositories) Trips() repository.TripRepository { return NewTripRepository(r.q) }

func (r repositories) Bookings() repository.BookingRepository { return NewBookingRepository(r.q) }

func (r repositories) Notifications() repository.NotificationRepository {
	return NewNotificationRepository(r.q)
}

func (r repositories) Users() repository.UserRepository { return NewUserRepository(r.q) }

func (r repositories) DriverProfiles() repository.DriverProfileRepository {
	return NewDriverProfileRepository(r.q)
}

func (r repositories) Cities() repository.CityRepository { return NewCityRepository(r.q) }

func (r repositories) Messages() repository.MessageRepository { return NewMessageRepository(r.q) }

// Ensure Store implements repository.Store.
var _ repository.Store = (*Store)(nil)
