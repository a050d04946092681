package verifications

import (
	"context"
	"database/sql"
	"encoding/json"
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

const selectVerification = `
	SELECT id, recruiter_id, documents, status, reviewed_by, reviewed_at, rejection_reason, created_at, updated_at
	FROM company_verifications`

type scanner interface {
	Scan(dest ...any) error
}

func scanVerification(row scanner) (*models.CompanyVerification, error) {
	v := &models.CompanyVerification{}
	var (
		docs       []byte
		reviewedBy sql.NullString
		reviewedAt sql.NullTime
	)
	err := row.Scan(&v.ID, &v.RecruiterID, &docs, &v.Status, &reviewedBy, &reviewedAt,
		&v.RejectionReason, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &v.Documents); err != nil {
			return nil, fmt.Errorf("decode documents: %w", err)
		}
	}
	v.ReviewedBy = reviewedBy.String
	if reviewedAt.Valid {
		t := reviewedAt.Time
		v.ReviewedAt = &t
	}
	return v, nil
}

func encodeDocuments(docs []models.Document) ([]byte, error) {
	if docs == nil {
		docs = []models.Document{}
	}
	return json.Marshal(docs)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, v *models.CompanyVerification) error {
	docs, err := encodeDocuments(v.Documents)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO company_verifications (id, recruiter_id, documents, status, reviewed_by, reviewed_at,
			rejection_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.ExecContext(ctx, query, v.ID, v.RecruiterID, docs, string(v.Status),
		nullable(v.ReviewedBy), v.ReviewedAt, v.RejectionReason, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.CompanyVerification, error) {
	return r.getOne(ctx, selectVerification+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByRecruiter(ctx context.Context, recruiterID string) (*models.CompanyVerification, error) {
	return r.getOne(ctx, selectVerification+` WHERE recruiter_id = $1`, recruiterID)
}

func (r *PostgresRepository) getOne(ctx context.Context, query, arg string) (*models.CompanyVerification, error) {
	v, err := scanVerification(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrVerificationNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) Update(ctx context.Context, v *models.CompanyVerification) error {
	docs, err := encodeDocuments(v.Documents)
	if err != nil {
		return err
	}
	query := `
		UPDATE company_verifications
		SET documents = $2, status = $3, reviewed_by = $4, reviewed_at = $5, rejection_reason = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, v.ID, docs, string(v.Status), nullable(v.ReviewedBy),
		v.ReviewedAt, v.RejectionReason, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrVerificationNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, status models.VerificationStatus) ([]*models.CompanyVerification, error) {
	query := selectVerification
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.CompanyVerification
	for rows.Next() {
		v, err := scanVerification(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) DeleteByRecruiter(ctx context.Context, recruiterID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM company_verifications WHERE recruiter_id = $1`, recruiterID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CountByStatus(ctx context.Context, status models.VerificationStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM company_verifications WHERE status = $1`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
