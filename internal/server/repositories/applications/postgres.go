package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

const uniqueJobApplicant = "applications_job_applicant_key"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const applicationCols = `id, job_id, applicant_id, resume, status, notes, applied_at, created_at, updated_at`

const selectApplication = `SELECT ` + applicationCols + ` FROM applications`

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*models.Application, error) {
	a := &models.Application{}
	err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.Resume, &a.Status, &a.Notes,
		&a.AppliedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Application) error {
	query := `
		INSERT INTO applications (id, job_id, applicant_id, resume, status, notes, applied_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.JobID, a.ApplicantID, a.Resume, string(a.Status),
		a.Notes, a.AppliedAt, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, uniqueJobApplicant) {
			return common.ErrDuplicateApplication
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx, selectApplication+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string, at time.Time) error {
	query := `
		UPDATE applications
		SET status = $2, notes = COALESCE($3, notes), updated_at = $4
		WHERE id = $1
	`
	var n sql.NullString
	if notes != nil {
		n = sql.NullString{String: *notes, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, query, id, string(status), n, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByJob(ctx context.Context, jobID string) ([]*models.Application, error) {
	return r.list(ctx, selectApplication+` WHERE job_id = $1 ORDER BY applied_at DESC`, jobID)
}

func (r *PostgresRepository) ListByApplicant(ctx context.Context, applicantID string) ([]*models.Application, error) {
	return r.list(ctx, selectApplication+` WHERE applicant_id = $1 ORDER BY applied_at DESC`, applicantID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Application, error) {
	return r.list(ctx, selectApplication+` ORDER BY applied_at DESC`)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) DeleteByJobs(ctx context.Context, jobIDs []string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE job_id = ANY($1)`, dbx.TextArray(jobIDs))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// DeleteByApplicant removes and returns the applicant's applications so the
// caller can drop the job back-references.
func (r *PostgresRepository) DeleteByApplicant(ctx context.Context, applicantID string) ([]*models.Application, error) {
	return r.list(ctx, `DELETE FROM applications WHERE applicant_id = $1 RETURNING `+applicationCols, applicantID)
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
