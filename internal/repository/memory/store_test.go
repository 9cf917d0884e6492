package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

func seedTrip(t *testing.T, s *Store, id string, day int, price int64) *domain.Trip {
	t.Helper()

	trip := &domain.Trip{
		ID:             id,
		DriverID:       "driver-1",
		OriginID:       "kyiv",
		DestinationID:  "odesa",
		DepartureDate:  time.Date(2026, 6, day, 0, 0, 0, 0, time.UTC),
		DepartureTime:  "08:00",
		PricePerSeat:   decimal.NewFromInt(price),
		AvailableSeats: 3,
		IsActive:       true,
	}
	if err := s.Trips().Create(context.Background(), trip); err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

func TestRunInTx_CommitsOnSuccess(t *testing.T) {
	t.Parallel()

	s := NewStore()
	seedTrip(t, s, "trip-1", 10, 100)

	err := s.RunInTx(context.Background(), func(ctx context.Context, tx repository.Repositories) error {
		return tx.Bookings().Create(ctx, &domain.Booking{ID: "b-1", TripID: "trip-1", SeatsCount: 1, Status: domain.BookingStatusConfirmed})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.Bookings().GetByID(context.Background(), "b-1"); err != nil {
		t.Fatalf("expected committed booking, got %v", err)
	}
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	t.Parallel()

	s := NewStore()
	seedTrip(t, s, "trip-1", 10, 100)
	boom := errors.New("boom")

	err := s.RunInTx(context.Background(), func(ctx context.Context, tx repository.Repositories) error {
		if err := tx.Bookings().Create(ctx, &domain.Booking{ID: "b-1", TripID: "trip-1"}); err != nil {
			return err
		}

		trip, _ := tx.Trips().GetByID(ctx, "trip-1")
		trip.IsActive = false
		if err := tx.Trips().Update(ctx, trip); err != nil {
			return err
		}

		// Writes are visible inside the transaction.
		if got, _ := tx.Trips().GetByID(ctx, "trip-1"); got.IsActive {
			t.Error("expected in-transaction read to see the update")
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if _, err := s.Bookings().GetByID(context.Background(), "b-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected booking to be rolled back, got %v", err)
	}
	if trip, _ := s.Trips().GetByID(context.Background(), "trip-1"); !trip.IsActive {
		t.Fatal("expected trip update to be rolled back")
	}
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	t.Parallel()

	s := NewStore()
	seedTrip(t, s, "trip-1", 10, 100)

	trip, _ := s.Trips().GetByID(context.Background(), "trip-1")
	trip.AvailableSeats = 99

	again, _ := s.Trips().GetByID(context.Background(), "trip-1")
	if again.AvailableSeats != 3 {
		t.Fatalf("mutating a returned trip must not change the store, got %d", again.AvailableSeats)
	}
}

func TestTripSearch(t *testing.T) {
	t.Parallel()

	s := NewStore()
	seedTrip(t, s, "late-cheap", 12, 50)
	seedTrip(t, s, "early-pricey", 11, 300)
	seedTrip(t, s, "past", 1, 10)

	inactive := seedTrip(t, s, "inactive", 11, 20)
	inactive.IsActive = false
	if err := s.Trips().Update(context.Background(), inactive); err != nil {
		t.Fatalf("update: %v", err)
	}

	from := time.Date(2026, 6, 5, 15, 0, 0, 0, time.UTC)
	trips, err := s.Trips().Search(context.Background(), repository.TripFilter{ActiveOnly: true, FromDate: from})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(trips) != 2 || trips[0].ID != "early-pricey" || trips[1].ID != "late-cheap" {
		t.Fatalf("unexpected date order: %v", ids(trips))
	}

	trips, _ = s.Trips().Search(context.Background(), repository.TripFilter{ActiveOnly: true, FromDate: from, Sort: repository.TripSortPriceAsc})
	if trips[0].ID != "late-cheap" {
		t.Fatalf("unexpected price order: %v", ids(trips))
	}

	minPrice := decimal.NewFromInt(100)
	trips, _ = s.Trips().Search(context.Background(), repository.TripFilter{MinPrice: &minPrice})
	if len(trips) != 1 || trips[0].ID != "early-pricey" {
		t.Fatalf("unexpected min price result: %v", ids(trips))
	}

	trips, _ = s.Trips().Search(context.Background(), repository.TripFilter{Date: time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC)})
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips on June 11, got %v", ids(trips))
	}

	trips, _ = s.Trips().Search(context.Background(), repository.TripFilter{Limit: 1})
	if len(trips) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(trips))
	}
}

func ids(trips []*domain.Trip) []string {
	out := make([]string, 0, len(trips))
	for _, t := range trips {
		out = append(out, t.ID)
	}
	return out
}

func TestUsersAndProfiles(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()

	if err := s.Users().Create(ctx, &domain.User{ID: "u-1", Phone: "+100", Role: domain.UserRoleRider}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Users().Create(ctx, &domain.User{ID: "u-2", Phone: "+100"}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate phone, got %v", err)
	}

	if err := s.DriverProfiles().Create(ctx, &domain.DriverProfile{UserID: "u-1"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := s.DriverProfiles().Create(ctx, &domain.DriverProfile{UserID: "u-1"}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict for second profile, got %v", err)
	}

	if err := s.Users().UpdateRole(ctx, "u-1", domain.UserRoleDriver); err != nil {
		t.Fatalf("update role: %v", err)
	}
	u, _ := s.Users().GetByPhone(ctx, "+100")
	if !u.IsDriver() {
		t.Fatal("expected driver role")
	}
}

func TestNotificationsNewestFirst(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	for _, id := range []string{"n-1", "n-2", "n-3"} {
		if err := s.Notifications().Create(ctx, &domain.Notification{ID: id, UserID: "u-1"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := s.Notifications().MarkRead(ctx, "n-3"); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	unread, _ := s.Notifications().ListByUser(ctx, "u-1", true, 0)
	if len(unread) != 2 || unread[0].ID != "n-2" {
		t.Fatalf("unexpected unread list: %+v", unread)
	}

	if n, _ := s.Notifications().CountUnread(ctx, "u-1"); n != 2 {
		t.Fatalf("expected 2 unread, got %d", n)
	}
}

func TestBookingUpdateStatusRequiresPriorStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	seedTrip(t, s, "trip-1", 10, 100)
	if err := s.Bookings().Create(ctx, &domain.Booking{ID: "b-1", TripID: "trip-1", SeatsCount: 1, Status: domain.BookingStatusCancelled, CancellationReason: "own reason"}); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	err := s.Bookings().UpdateStatus(ctx, "b-1", domain.BookingStatusConfirmed, domain.BookingStatusCancelled, "trip cancelled by driver")
	if !errors.Is(err, repository.ErrStaleStatus) {
		t.Fatalf("expected ErrStaleStatus, got %v", err)
	}

	b, _ := s.Bookings().GetByID(ctx, "b-1")
	if b.CancellationReason != "own reason" {
		t.Errorf("stale update must not overwrite the reason, got %q", b.CancellationReason)
	}

	if err := s.Bookings().UpdateStatus(ctx, "missing", domain.BookingStatusPending, domain.BookingStatusConfirmed, ""); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
