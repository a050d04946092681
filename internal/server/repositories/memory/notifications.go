package memory

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type NotificationRepository struct{ s *Store }

func NewNotificationRepository(s *Store) *NotificationRepository {
	return &NotificationRepository{s: s}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	defer r.s.write(ctx)()
	r.s.st.notifications.put(n.ID, *n, r.s.next())
	return nil
}

func (r *NotificationRepository) GetByID(_ context.Context, id string) (*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.st.notifications.get(id)
	if !ok {
		return nil, common.ErrNotificationNotFound
	}
	return &n, nil
}

func (r *NotificationRepository) ListByRecipient(_ context.Context, rc models.Recipient) ([]*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.s.st.notifications.filter(func(n models.Notification) bool { return n.Recipient == rc })
	slices.SortStableFunc(rows, byCreatedDesc(func(n models.Notification) time.Time { return n.CreatedAt }))
	out := make([]*models.Notification, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	defer r.s.write(ctx)()
	n, ok := r.s.st.notifications.get(id)
	if !ok {
		return common.ErrNotificationNotFound
	}
	n.IsRead = true
	r.s.st.notifications.put(id, n, 0)
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, rc models.Recipient) (int64, error) {
	defer r.s.write(ctx)()
	var count int64
	for _, n := range r.s.st.notifications.filter(func(n models.Notification) bool { return n.Recipient == rc && !n.IsRead }) {
		n.IsRead = true
		r.s.st.notifications.put(n.ID, n, 0)
		count++
	}
	return count, nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, rc models.Recipient) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.st.notifications.filter(func(n models.Notification) bool { return n.Recipient == rc && !n.IsRead })), nil
}

func (r *NotificationRepository) DeleteByJobs(ctx context.Context, jobIDs []string) (int64, error) {
	defer r.s.write(ctx)()
	var count int64
	for _, n := range r.s.st.notifications.filter(func(n models.Notification) bool {
		return n.RelatedJob != "" && slices.Contains(jobIDs, n.RelatedJob)
	}) {
		r.s.st.notifications.del(n.ID)
		count++
	}
	return count, nil
}
