package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

// NotificationService reads and acknowledges a principal's notifications.
// Other services create notifications through create inside their own
// transaction and hand them to publish once it has committed.
type NotificationService struct {
	*env
}

func (s *NotificationService) create(ctx context.Context, tx dbx.DBTX, n *models.Notification) error {
	n.ID = s.newID()
	n.CreatedAt = s.utc()
	if err := s.rm.Notifications(tx).Create(ctx, n); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// publish forwards committed notifications to the event bus. Delivery is
// best-effort: the stored notification is the source of truth.
func (s *NotificationService) publish(ctx context.Context, ns ...*models.Notification) {
	for _, n := range ns {
		if n == nil {
			continue
		}
		if err := s.pub.Publish(ctx, n); err != nil {
			s.log.Warn(ctx, "error publishing notification", "id", n.ID, "type", n.Type, "error", err)
		}
	}
}

// List returns the caller's notifications newest first with the related
// job's title attached when the job still exists.
func (s *NotificationService) List(ctx context.Context, p models.Principal) ([]*models.NotificationWithJob, error) {
	rc, ok := p.Recipient()
	if !ok {
		return []*models.NotificationWithJob{}, nil
	}
	db := s.rm.Conn()

	ns, err := s.rm.Notifications(db).ListByRecipient(ctx, rc)
	if err != nil {
		return nil, err
	}

	var jobIDs []string
	for _, n := range ns {
		if n.RelatedJob != "" {
			jobIDs = append(jobIDs, n.RelatedJob)
		}
	}
	related := map[string]*models.RelatedJob{}
	if len(jobIDs) > 0 {
		jobs, err := s.rm.Jobs(db).GetByIDs(ctx, jobIDs)
		if err != nil {
			return nil, err
		}
		for _, j := range jobs {
			related[j.ID] = &models.RelatedJob{ID: j.ID, Title: j.Title, CompanyName: j.CompanyName}
		}
	}

	out := make([]*models.NotificationWithJob, 0, len(ns))
	for _, n := range ns {
		out = append(out, &models.NotificationWithJob{Notification: n, Job: related[n.RelatedJob]})
	}
	return out, nil
}

// MarkRead marks one notification read. Only its recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, p models.Principal, id string) (*models.Notification, error) {
	repo := s.rm.Notifications(s.rm.Conn())
	n, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rc, ok := p.Recipient()
	if !ok || n.Recipient != rc {
		return nil, fmt.Errorf("%w: not authorized", common.ErrForbidden)
	}
	if err := repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}

// MarkAllRead marks every unread notification of the caller read and
// returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, p models.Principal) (int64, error) {
	rc, ok := p.Recipient()
	if !ok {
		return 0, nil
	}
	return s.rm.Notifications(s.rm.Conn()).MarkAllRead(ctx, rc)
}

func (s *NotificationService) UnreadCount(ctx context.Context, p models.Principal) (int, error) {
	rc, ok := p.Recipient()
	if !ok {
		return 0, nil
	}
	return s.rm.Notifications(s.rm.Conn()).CountUnread(ctx, rc)
}
