package memory

import (
	"context"
	"sort"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

type tripRepo struct {
	acc access
}

func (r *tripRepo) Create(ctx context.Context, trip *domain.Trip) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.trips[trip.ID]; ok {
			return repository.ErrConflict
		}
		st.trips[trip.ID] = *trip
		st.tripOrder = append(st.tripOrder, trip.ID)
		return nil
	})
}

func (r *tripRepo) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	var (
		trip domain.Trip
		ok   bool
	)
	r.acc.read(func(st *state) {
		trip, ok = st.trips[id]
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &trip, nil
}

// GetByIDForUpdate needs no extra locking: transactions are serialized.
func (r *tripRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error) {
	return r.GetByID(ctx, id)
}

func (r *tripRepo) Search(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	var trips []*domain.Trip
	r.acc.read(func(st *state) {
		for _, id := range st.tripOrder {
			t := st.trips[id]
			if matches(&t, filter) {
				trips = append(trips, &t)
			}
		}
	})

	sort.SliceStable(trips, func(i, j int) bool {
		a, b := trips[i], trips[j]
		switch filter.Sort {
		case repository.TripSortPriceAsc:
			if !a.PricePerSeat.Equal(b.PricePerSeat) {
				return a.PricePerSeat.LessThan(b.PricePerSeat)
			}
		case repository.TripSortPriceDesc:
			if !a.PricePerSeat.Equal(b.PricePerSeat) {
				return a.PricePerSeat.GreaterThan(b.PricePerSeat)
			}
		}
		return a.DepartsAt().Before(b.DepartsAt())
	})

	if filter.Limit > 0 && len(trips) > filter.Limit {
		trips = trips[:filter.Limit]
	}
	return trips, nil
}

func matches(t *domain.Trip, f repository.TripFilter) bool {
	switch {
	case f.ActiveOnly && !t.IsActive:
		return false
	case f.OriginID != "" && t.OriginID != f.OriginID:
		return false
	case f.DestinationID != "" && t.DestinationID != f.DestinationID:
		return false
	case !f.Date.IsZero() && !sameDay(t.DepartureDate, f.Date):
		return false
	case !f.FromDate.IsZero() && t.DepartureDate.Before(truncateDay(f.FromDate)):
		return false
	case f.MinPrice != nil && t.PricePerSeat.LessThan(*f.MinPrice):
		return false
	case f.MaxPrice != nil && t.PricePerSeat.GreaterThan(*f.MaxPrice):
		return false
	}
	return true
}

func (r *tripRepo) ListByDriver(ctx context.Context, driverID string) ([]*domain.Trip, error) {
	var trips []*domain.Trip
	r.acc.read(func(st *state) {
		for _, id := range st.tripOrder {
			t := st.trips[id]
			if t.DriverID == driverID {
				trips = append(trips, &t)
			}
		}
	})

	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].DepartsAt().After(trips[j].DepartsAt())
	})
	return trips, nil
}

func (r *tripRepo) Update(ctx context.Context, trip *domain.Trip) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.trips[trip.ID]; !ok {
			return repository.ErrNotFound
		}
		st.trips[trip.ID] = *trip
		return nil
	})
}
