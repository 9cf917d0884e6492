package memory

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

type userRepo struct {
	acc access
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.users[user.ID]; ok {
			return repository.ErrConflict
		}
		for _, u := range st.users {
			if u.Phone == user.Phone {
				return repository.ErrConflict
			}
		}
		st.users[user.ID] = *user
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var (
		user domain.User
		ok   bool
	)
	r.acc.read(func(st *state) {
		user, ok = st.users[id]
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var found *domain.User
	r.acc.read(func(st *state) {
		for _, u := range st.users {
			if u.Phone == phone {
				u := u
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

func (r *userRepo) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	return r.acc.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		u.Role = role
		st.users[id] = u
		return nil
	})
}

type profileRepo struct {
	acc access
}

func (r *profileRepo) Create(ctx context.Context, p *domain.DriverProfile) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.profiles[p.UserID]; ok {
			return repository.ErrConflict
		}
		st.profiles[p.UserID] = *p
		return nil
	})
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*domain.DriverProfile, error) {
	var (
		p  domain.DriverProfile
		ok bool
	)
	r.acc.read(func(st *state) {
		p, ok = st.profiles[userID]
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *profileRepo) SetVerified(ctx context.Context, userID string, verified bool) error {
	return r.acc.write(func(st *state) error {
		p, ok := st.profiles[userID]
		if !ok {
			return repository.ErrNotFound
		}
		p.Verified = verified
		st.profiles[userID] = p
		return nil
	})
}
