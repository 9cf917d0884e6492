package memory

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

type bookingRepo struct {
	acc access
}

func (r *bookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return r.acc.write(func(st *state) error {
		for _, b := range st.bookings {
			if b.ID == booking.ID {
				return repository.ErrConflict
			}
		}
		if _, ok := st.trips[booking.TripID]; !ok {
			return repository.ErrNotFound
		}
		st.bookings = append(st.bookings, *booking)
		return nil
	})
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var found *domain.Booking
	r.acc.read(func(st *state) {
		for _, b := range st.bookings {
			if b.ID == id {
				b := b
				found = &b
				return
			}
		}
	})
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

func (r *bookingRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *bookingRepo) ListByTrip(ctx context.Context, tripID string) ([]*domain.Booking, error) {
	return r.filter(false, func(_ *state, b *domain.Booking) bool { return b.TripID == tripID }), nil
}

func (r *bookingRepo) ListByPassenger(ctx context.Context, passengerID string) ([]*domain.Booking, error) {
	return r.filter(true, func(_ *state, b *domain.Booking) bool { return b.PassengerID == passengerID }), nil
}

func (r *bookingRepo) ListConfirmedByDriver(ctx context.Context, driverID string) ([]*domain.Booking, error) {
	return r.filter(true, func(st *state, b *domain.Booking) bool {
		return b.Status == domain.BookingStatusConfirmed && st.trips[b.TripID].DriverID == driverID
	}), nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason string) error {
	return r.acc.write(func(st *state) error {
		for i := range st.bookings {
			if st.bookings[i].ID == id {
				if st.bookings[i].Status != from {
					return repository.ErrStaleStatus
				}
				st.bookings[i].Status = to
				st.bookings[i].CancellationReason = reason
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

// filter returns copies of matching bookings in insertion order, or
// reversed when newestFirst is set.
func (r *bookingRepo) filter(newestFirst bool, keep func(st *state, b *domain.Booking) bool) []*domain.Booking {
	var out []*domain.Booking
	r.acc.read(func(st *state) {
		for i := range st.bookings {
			b := st.bookings[i]
			if keep(st, &b) {
				out = append(out, &b)
			}
		}
	})
	if newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
