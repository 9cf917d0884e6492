// Package memory is an in-process implementation of repository.Store for
// local development and tests. Transactions are serialized and applied to
// a private copy of the data that replaces the live state on commit.
package memory

import (
	"context"
	"sync"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

type state struct {
	trips         map[string]domain.Trip
	tripOrder     []string
	bookings      []domain.Booking
	notifications []domain.Notification
	users         map[string]domain.User
	profiles      map[string]domain.DriverProfile
	cities        map[string]domain.City
	messages      []domain.Message
}

func newState() *state {
	return &state{
		trips:    make(map[string]domain.Trip),
		users:    make(map[string]domain.User),
		profiles: make(map[string]domain.DriverProfile),
		cities:   make(map[string]domain.City),
	}
}

func (st *state) clone() *state {
	c := &state{
		trips:         make(map[string]domain.Trip, len(st.trips)),
		tripOrder:     append([]string(nil), st.tripOrder...),
		bookings:      append([]domain.Booking(nil), st.bookings...),
		notifications: append([]domain.Notification(nil), st.notifications...),
		users:         make(map[string]domain.User, len(st.users)),
		profiles:      make(map[string]domain.DriverProfile, len(st.profiles)),
		cities:        make(map[string]domain.City, len(st.cities)),
		messages:      append([]domain.Message(nil), st.messages...),
	}
	for k, v := range st.trips {
		c.trips[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.profiles {
		c.profiles[k] = v
	}
	for k, v := range st.cities {
		c.cities[k] = v
	}
	return c
}

// Store is an in-memory implementation of repository.Store.
type Store struct {
	txMu sync.Mutex // serializes writers
	mu   sync.RWMutex
	st   *state

	repos
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	s := &Store{st: newState()}
	s.repos = repos{acc: liveAccess{s: s}}
	return s
}

// RunInTx runs fn against a private copy of the data and publishes the
// copy only if fn succeeds.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	working := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx, repos{acc: txAccess{st: working}}); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = working
	s.mu.Unlock()

	return nil
}

// AddCity seeds a city. Cities have no write API.
func (s *Store) AddCity(city domain.City) {
	_ = s.acc.write(func(st *state) error {
		st.cities[city.ID] = city
		return nil
	})
}

// access abstracts reading and writing either the live state or a
// transaction's working copy.
type access interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

type liveAccess struct {
	s *Store
}

func (a liveAccess) read(fn func(st *state)) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	fn(a.s.st)
}

func (a liveAccess) write(fn func(st *state) error) error {
	a.s.txMu.Lock()
	defer a.s.txMu.Unlock()

	working := func() *state {
		a.s.mu.RLock()
		defer a.s.mu.RUnlock()
		return a.s.st.clone()
	}()

	if err := fn(working); err != nil {
		return err
	}

	a.s.mu.Lock()
	a.s.st = working
	a.s.mu.Unlock()
	return nil
}

type txAccess struct {
	st *state
}

func (a txAccess) read(fn func(st *state)) { fn(a.st) }

func (a txAccess) write(fn func(st *state) error) error { return fn(a.st) }

type repos struct {
	acc access
}

func (r repos) Trips() repository.TripRepository { return &tripRepo{acc: r.acc} }

func (r repos) Bookings() repository.BookingRepository { return &bookingRepo{acc: r.acc} }

func (r repos) Notifications() repository.NotificationRepository {
	return &notificationRepo{acc: r.acc}
}

func (r repos) Users() repository.UserRepository { return &userRepo{acc: r.acc} }

func (r repos) DriverProfiles() repository.DriverProfileRepository {
	return &profileRepo{acc: r.acc}
}

func (r repos) Cities() repository.CityRepository { return &cityRepo{acc: r.acc} }

func (r repos) Messages() repository.MessageRepository { return &messageRepo{acc: r.acc} }

// Ensure Store implements repository.Store.
var _ repository.Store = (*Store)(nil)
