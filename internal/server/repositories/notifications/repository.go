// Package notifications is the per-recipient notification outbox.
package notifications

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	ListByRecipient(ctx context.Context, rc models.Recipient) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, rc models.Recipient) (int64, error)
	CountUnread(ctx context.Context, rc models.Recipient) (int, error)
	DeleteByJobs(ctx context.Context, jobIDs []string) (int64, error)
}
