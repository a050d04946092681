package recruiters

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectRecruiter = `
	SELECT id, full_name, email, password_hash, phone, company_name, company_description,
	       company_address, company_website, verification_status, is_active, created_at, updated_at
	FROM recruiters`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecruiter(row scanner) (*models.Recruiter, error) {
	r := &models.Recruiter{}
	err := row.Scan(&r.ID, &r.FullName, &r.Email, &r.PasswordHash, &r.Phone, &r.CompanyName,
		&r.CompanyDescription, &r.CompanyAddress, &r.CompanyWebsite, &r.VerificationStatus,
		&r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rc *models.Recruiter) error {
	query := `
		INSERT INTO recruiters (id, full_name, email, password_hash, phone, company_name, company_description,
			company_address, company_website, verification_status, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query, rc.ID, rc.FullName, rc.Email, rc.PasswordHash, rc.Phone,
		rc.CompanyName, rc.CompanyDescription, rc.CompanyAddress, rc.CompanyWebsite,
		string(rc.VerificationStatus), rc.IsActive, rc.CreatedAt, rc.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, "") {
			return common.ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Recruiter, error) {
	return r.getOne(ctx, selectRecruiter+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Recruiter, error) {
	return r.getOne(ctx, selectRecruiter+` WHERE email = $1`, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query, arg string) (*models.Recruiter, error) {
	rc, err := scanRecruiter(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rc, nil
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Recruiter, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, selectRecruiter+` WHERE id = ANY($1)`, dbx.TextArray(ids))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Recruiter, error) {
	return r.list(ctx, selectRecruiter+` ORDER BY created_at DESC`)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Recruiter, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Recruiter
	for rows.Next() {
		rc, err := scanRecruiter(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recruiters`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rc *models.Recruiter) error {
	query := `
		UPDATE recruiters
		SET full_name = $2, email = $3, password_hash = $4, phone = $5, company_name = $6,
			company_description = $7, company_address = $8, company_website = $9,
			verification_status = $10, is_active = $11, updated_at = $12
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, rc.ID, rc.FullName, rc.Email, rc.PasswordHash, rc.Phone,
		rc.CompanyName, rc.CompanyDescription, rc.CompanyAddress, rc.CompanyWebsite,
		string(rc.VerificationStatus), rc.IsActive, rc.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, "") {
			return common.ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) SetVerificationStatus(ctx context.Context, id string, status models.RecruiterStatus, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recruiters SET verification_status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recruiters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
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
