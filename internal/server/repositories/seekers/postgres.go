package seekers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectSeeker = `
	SELECT s.id, s.full_name, s.email, s.password_hash, s.phone, s.skills, s.experience,
	       s.profile_photo, s.resume, s.is_active, s.created_at, s.updated_at,
	       ARRAY(SELECT sj.job_id FROM saved_jobs sj WHERE sj.job_seeker_id = s.id ORDER BY sj.saved_at)
	FROM job_seekers s`

type scanner interface {
	Scan(dest ...any) error
}

func scanSeeker(row scanner) (*models.JobSeeker, error) {
	s := &models.JobSeeker{}
	var skills, saved pq.StringArray
	err := row.Scan(&s.ID, &s.FullName, &s.Email, &s.PasswordHash, &s.Phone, &skills, &s.Experience,
		&s.ProfilePhoto, &s.Resume, &s.IsActive, &s.CreatedAt, &s.UpdatedAt, &saved)
	if err != nil {
		return nil, err
	}
	s.Skills = []string(skills)
	s.SavedJobs = []string(saved)
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.JobSeeker) error {
	query := `
		INSERT INTO job_seekers (id, full_name, email, password_hash, phone, skills, experience,
			profile_photo, resume, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.FullName, s.Email, s.PasswordHash, s.Phone,
		dbx.TextArray(s.Skills), s.Experience, s.ProfilePhoto, s.Resume, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, "") {
			return common.ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.JobSeeker, error) {
	return r.getOne(ctx, selectSeeker+` WHERE s.id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.JobSeeker, error) {
	return r.getOne(ctx, selectSeeker+` WHERE s.email = $1`, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query, arg string) (*models.JobSeeker, error) {
	s, err := scanSeeker(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.JobSeeker, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, selectSeeker+` WHERE s.id = ANY($1)`, dbx.TextArray(ids))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.JobSeeker, error) {
	return r.list(ctx, selectSeeker+` ORDER BY s.created_at DESC`)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.JobSeeker, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.JobSeeker
	for rows.Next() {
		s, err := scanSeeker(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_seekers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.JobSeeker) error {
	query := `
		UPDATE job_seekers
		SET full_name = $2, email = $3, password_hash = $4, phone = $5, skills = $6, experience = $7,
			profile_photo = $8, resume = $9, is_active = $10, updated_at = $11
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, s.ID, s.FullName, s.Email, s.PasswordHash, s.Phone,
		dbx.TextArray(s.Skills), s.Experience, s.ProfilePhoto, s.Resume, s.IsActive, s.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, "") {
			return common.ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM job_seekers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) SaveJob(ctx context.Context, seekerID, jobID string, at time.Time) error {
	query := `
		INSERT INTO saved_jobs (job_seeker_id, job_id, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, seekerID, jobID, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrJobAlreadySaved
	}
	return nil
}

func (r *PostgresRepository) UnsaveJob(ctx context.Context, seekerID, jobID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE job_seeker_id = $1 AND job_id = $2`, seekerID, jobID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteSavedBySeeker(ctx context.Context, seekerID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE job_seeker_id = $1`, seekerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteSavedByJobs(ctx context.Context, jobIDs []string) error {
	if len(jobIDs) == 0 {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE job_id = ANY($1)`, dbx.TextArray(jobIDs)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrPrincipalNotFound
	}
	return nil
}
