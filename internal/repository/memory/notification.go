package memory

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

type notificationRepo struct {
	acc access
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return r.acc.write(func(st *state) error {
		st.notifications = append(st.notifications, *n)
		return nil
	})
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	var found *domain.Notification
	r.acc.read(func(st *state) {
		for _, n := range st.notifications {
			if n.ID == id {
				n := n
				found = &n
				return
			}
		}
	})
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*domain.Notification, error) {
	var out []*domain.Notification
	r.acc.read(func(st *state) {
		for i := len(st.notifications) - 1; i >= 0; i-- {
			n := st.notifications[i]
			if n.UserID != userID || (unreadOnly && n.IsRead) {
				continue
			}
			out = append(out, &n)
			if limit > 0 && len(out) == limit {
				return
			}
		}
	})
	return out, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	count := 0
	r.acc.read(func(st *state) {
		for _, n := range st.notifications {
			if n.UserID == userID && !n.IsRead {
				count++
			}
		}
	})
	return count, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.acc.write(func(st *state) error {
		for i := range st.notifications {
			if st.notifications[i].ID == id {
				st.notifications[i].IsRead = true
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	return r.acc.write(func(st *state) error {
		for i := range st.notifications {
			if st.notifications[i].UserID == userID {
				st.notifications[i].IsRead = true
			}
		}
		return nil
	})
}
