package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"rideshare/internal/domain"
	"rideshare/internal/queue"
	"rideshare/internal/repository"
	"rideshare/internal/repository/memory"
)

var fixedNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

// recordingPublisher captures every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.NotificationEvent
}

func (p *recordingPublisher) PublishNotification(_ context.Context, e queue.NotificationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type testEnv struct {
	store         *memory.Store
	publisher     *recordingPublisher
	notifications *NotificationService
	bookings      *BookingService
	trips         *TripService
	drivers       *DriverService
	users         *UserService
	messages      *MessageService
}

func newTestEnv(t *testing.T, policy BookingPolicy) *testEnv {
	t.Helper()

	store := memory.NewStore()
	store.AddCity(domain.City{ID: "kyiv", Name: "Kyiv", Latitude: 50.45, Longitude: 30.52})
	store.AddCity(domain.City{ID: "odesa", Name: "Odesa", Latitude: 46.48, Longitude: 30.72})
	store.AddCity(domain.City{ID: "lviv", Name: "Lviv", Latitude: 49.84, Longitude: 24.03})

	return newTestEnvWithStore(t, store, store, policy)
}

// newTestEnvWithStore lets tests swap the store used by services while
// seeding through the underlying memory store.
func newTestEnvWithStore(t *testing.T, mem *memory.Store, store repository.Store, policy BookingPolicy) *testEnv {
	t.Helper()

	clock := func() time.Time { return fixedNow }
	pub := &recordingPublisher{}

	notifications := NewNotificationService(store, pub)
	notifications.now = clock

	bookings := NewBookingService(store, notifications, policy)
	bookings.now = clock

	trips := NewTripService(store, notifications, policy, nil, nil)
	trips.now = clock

	drivers := NewDriverService(store)
	drivers.now = clock

	users := NewUserService(store)
	users.now = clock

	messages := NewMessageService(store, notifications)
	messages.now = clock

	return &testEnv{
		store:         mem,
		publisher:     pub,
		notifications: notifications,
		bookings:      bookings,
		trips:         trips,
		drivers:       drivers,
		users:         users,
		messages:      messages,
	}
}

func (e *testEnv) addUser(t *testing.T, id, name string, role domain.UserRole) *domain.User {
	t.Helper()

	u := &domain.User{ID: id, Name: name, Phone: "+38050" + id, Role: role, CreatedAt: fixedNow}
	if err := e.store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
	return u
}

func (e *testEnv) addTrip(t *testing.T, driverID string, seats int, price string) *domain.Trip {
	t.Helper()

	trip, err := e.trips.CreateTrip(context.Background(), CreateTripRequest{
		DriverID:        driverID,
		OriginID:        "kyiv",
		DestinationID:   "odesa",
		DepartureDate:   fixedNow.AddDate(0, 0, 3),
		DepartureTime:   "08:30",
		PricePerSeat:    decimal.RequireFromString(price),
		AvailableSeats:  seats,
		LuggageCapacity: 50,
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

func (e *testEnv) book(t *testing.T, tripID, passengerID string, seats int) *domain.Booking {
	t.Helper()

	b, err := e.bookings.CreateBooking(context.Background(), CreateBookingRequest{
		TripID:      tripID,
		PassengerID: passengerID,
		SeatsCount:  seats,
	})
	if err != nil {
		t.Fatalf("book %d seats for %s: %v", seats, passengerID, err)
	}
	return b
}

func (e *testEnv) freeSeats(t *testing.T, tripID string) int {
	t.Helper()

	free, err := e.trips.GetFreeSeats(context.Background(), tripID)
	if err != nil {
		t.Fatalf("free seats: %v", err)
	}
	return free
}

func (e *testEnv) notificationsOf(t *testing.T, userID string) []*domain.Notification {
	t.Helper()

	ns, err := e.store.Notifications().ListByUser(context.Background(), userID, false, 0)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	return ns
}

// standardEnv seeds a driver and two riders.
func standardEnv(t *testing.T) *testEnv {
	t.Helper()

	env := newTestEnv(t, DefaultBookingPolicy())
	env.addUser(t, "driver-1", "Oleh", domain.UserRoleDriver)
	env.addUser(t, "rider-1", "Anna", domain.UserRoleRider)
	env.addUser(t, "rider-2", "Ivan", domain.UserRoleRider)
	return env
}

var errInjected = errors.New("injected failure")

// faultyStore wraps a store and fails the n-th notification write made
// inside a transaction.
type faultyStore struct {
	repository.Store
	failAt int

	mu    sync.Mutex
	count int
}

func (s *faultyStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repositories) error) error {
	return s.Store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		return fn(ctx, faultyRepos{Repositories: tx, store: s})
	})
}

type faultyRepos struct {
	repository.Repositories
	store *faultyStore
}

func (r faultyRepos) Notifications() repository.NotificationRepository {
	return faultyNotifications{NotificationRepository: r.Repositories.Notifications(), store: r.store}
}

type faultyNotifications struct {
	repository.NotificationRepository
	store *faultyStore
}

func (n faultyNotifications) Create(ctx context.Context, notification *domain.Notification) error {
	n.store.mu.Lock()
	n.store.count++
	fail := n.store.count == n.store.failAt
	n.store.mu.Unlock()

	if fail {
		return errInjected
	}
	return n.NotificationRepository.Create(ctx, notification)
}

// lockRecordingStore records the order of row locks taken inside a transaction.
type lockRecordingStore struct {
	repository.Store

	mu    sync.Mutex
	locks []string
}

func (s *lockRecordingStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repositories) error) error {
	return s.Store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		return fn(ctx, lockRecordingRepos{Repositories: tx, store: s})
	})
}

func (s *lockRecordingStore) record(lock string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks = append(s.locks, lock)
}

type lockRecordingRepos struct {
	repository.Repositories
	store *lockRecordingStore
}

func (r lockRecordingRepos) Trips() repository.TripRepository {
	return lockRecordingTrips{TripRepository: r.Repositories.Trips(), store: r.store}
}

func (r lockRecordingRepos) Bookings() repository.BookingRepository {
	return lockRecordingBookings{BookingRepository: r.Repositories.Bookings(), store: r.store}
}

type lockRecordingTrips struct {
	repository.TripRepository
	store *lockRecordingStore
}

func (t lockRecordingTrips) GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error) {
	t.store.record("trip")
	return t.TripRepository.GetByIDForUpdate(ctx, id)
}

type lockRecordingBookings struct {
	repository.BookingRepository
	store *lockRecordingStore
}

func (b lockRecordingBookings) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	b.store.record("booking")
	return b.BookingRepository.GetByIDForUpdate(ctx, id)
}

// staleListStore reports cancelled bookings as confirmed from ListByTrip,
// the view a transaction has when a concurrent cancel commits after its read.
type staleListStore struct {
	repository.Store
}

func (s staleListStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repositories) error) error {
	return s.Store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		return fn(ctx, staleListRepos{Repositories: tx})
	})
}

type staleListRepos struct {
	repository.Repositories
}

func (r staleListRepos) Bookings() repository.BookingRepository {
	return staleListBookings{BookingRepository: r.Repositories.Bookings()}
}

type staleListBookings struct {
	repository.BookingRepository
}

func (b staleListBookings) ListByTrip(ctx context.Context, tripID string) ([]*domain.Booking, error) {
	bookings, err := b.BookingRepository.ListByTrip(ctx, tripID)
	for _, booking := range bookings {
		if booking.Status == domain.BookingStatusCancelled {
			booking.Status = domain.BookingStatusConfirmed
		}
	}
	return bookings, err
}
