package memory

import (
	"context"
	"sort"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

type cityRepo struct {
	acc access
}

func (r *cityRepo) GetByID(ctx context.Context, id string) (*domain.City, error) {
	var (
		city domain.City
		ok   bool
	)
	r.acc.read(func(st *state) {
		city, ok = st.cities[id]
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &city, nil
}

func (r *cityRepo) GetAll(ctx context.Context) ([]*domain.City, error) {
	var cities []*domain.City
	r.acc.read(func(st *state) {
		for _, c := range st.cities {
			c := c
			cities = append(cities, &c)
		}
	})
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities, nil
}

type messageRepo struct {
	acc access
}

func (r *messageRepo) Create(ctx context.Context, msg *domain.Message) error {
	return r.acc.write(func(st *state) error {
		st.messages = append(st.messages, *msg)
		return nil
	})
}

func (r *messageRepo) ListByTripAndUser(ctx context.Context, tripID, userID string) ([]*domain.Message, error) {
	var out []*domain.Message
	r.acc.read(func(st *state) {
		for _, m := range st.messages {
			if m.TripID == tripID && (m.SenderID == userID || m.RecipientID == userID) {
				m := m
				out = append(out, &m)
			}
		}
	})
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
