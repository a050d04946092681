package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectNotification = `
	SELECT id, recipient_kind, recipient_id, type, title, message, related_job, related_application, is_read, created_at
	FROM notifications`

type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(row scanner) (*models.Notification, error) {
	n := &models.Notification{}
	var job, app sql.NullString
	err := row.Scan(&n.ID, &n.Recipient.Kind, &n.Recipient.ID, &n.Type, &n.Title, &n.Message,
		&job, &app, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	n.RelatedJob = job.String
	n.RelatedApplication = app.String
	return n, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_kind, recipient_id, type, title, message,
			related_job, related_application, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query, n.ID, string(n.Recipient.Kind), n.Recipient.ID, string(n.Type),
		n.Title, n.Message, nullable(n.RelatedJob), nullable(n.RelatedApplication), n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	n, err := scanNotification(r.db.QueryRowContext(ctx, selectNotification+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ListByRecipient(ctx context.Context, rc models.Recipient) ([]*models.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		selectNotification+` WHERE recipient_kind = $1 AND recipient_id = $2 ORDER BY created_at DESC`,
		string(rc.Kind), rc.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotificationNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkAllRead(ctx context.Context, rc models.Recipient) (int64, error) {
	return r.exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_kind = $1 AND recipient_id = $2 AND is_read = FALSE`,
		string(rc.Kind), rc.ID)
}

func (r *PostgresRepository) CountUnread(ctx context.Context, rc models.Recipient) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_kind = $1 AND recipient_id = $2 AND is_read = FALSE`,
		string(rc.Kind), rc.ID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteByJobs(ctx context.Context, jobIDs []string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	return r.exec(ctx, `DELETE FROM notifications WHERE related_job = ANY($1)`, dbx.TextArray(jobIDs))
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
