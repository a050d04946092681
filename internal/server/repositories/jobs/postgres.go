package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
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

const selectJob = `
	SELECT id, title, description, skills_required, salary_min, salary_max, experience, job_type,
	       location, category, company_name, deadline, posted_by, is_active, application_ids,
	       created_at, updated_at
	FROM jobs`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*models.Job, error) {
	j := &models.Job{}
	var skills, apps pq.StringArray
	err := row.Scan(&j.ID, &j.Title, &j.Description, &skills, &j.Salary.Min, &j.Salary.Max,
		&j.Experience, &j.JobType, &j.Location, &j.Category, &j.CompanyName, &j.Deadline,
		&j.PostedBy, &j.IsActive, &apps, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.SkillsRequired = []string(skills)
	j.ApplicationIDs = []string(apps)
	return j, nil
}

func (r *PostgresRepository) Create(ctx context.Context, j *models.Job) error {
	query := `
		INSERT INTO jobs (id, title, description, skills_required, salary_min, salary_max, experience,
			job_type, location, category, company_name, deadline, posted_by, is_active,
			application_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.ExecContext(ctx, query, j.ID, j.Title, j.Description, dbx.TextArray(j.SkillsRequired),
		j.Salary.Min, j.Salary.Max, string(j.Experience), string(j.JobType), j.Location,
		string(j.Category), j.CompanyName, j.Deadline, j.PostedBy, j.IsActive,
		dbx.TextArray(j.ApplicationIDs), j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx, selectJob+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrJobNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, selectJob+` WHERE id = ANY($1) ORDER BY created_at DESC`, dbx.TextArray(ids))
}

func (r *PostgresRepository) Update(ctx context.Context, j *models.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, skills_required = $4, salary_min = $5, salary_max = $6,
			experience = $7, job_type = $8, location = $9, category = $10, company_name = $11,
			deadline = $12, is_active = $13, updated_at = $14
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, j.ID, j.Title, j.Description, dbx.TextArray(j.SkillsRequired),
		j.Salary.Min, j.Salary.Max, string(j.Experience), string(j.JobType), j.Location,
		string(j.Category), j.CompanyName, j.Deadline, j.IsActive, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

// buildFilter translates f into a WHERE clause and its positional args.
func buildFilter(f models.JobFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if !f.IncludeInactive {
		conds = append(conds, "is_active = TRUE")
	}
	if f.PostedBy != "" {
		add("posted_by = $%d", f.PostedBy)
	}
	if f.Category != "" {
		add("category = $%d", string(f.Category))
	}
	if f.Experience != "" {
		add("experience = $%d", string(f.Experience))
	}
	if f.JobType != "" {
		add("job_type = $%d", string(f.JobType))
	}
	if f.Location != "" {
		add("location ILIKE $%d", "%"+escapeLike(f.Location)+"%")
	}
	if f.MinSalary != nil {
		add("salary_min >= $%d", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		add("salary_max <= $%d", *f.MaxSalary)
	}
	if len(f.Skills) > 0 {
		add("skills_required && $%d", dbx.TextArray(f.Skills))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR company_name ILIKE $%d)", n, n, n))
	}
	if !f.NotExpiredAt.IsZero() {
		add("deadline >= $%d", f.NotExpiredAt)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func (r *PostgresRepository) List(ctx context.Context, f models.JobFilter) ([]*models.Job, error) {
	where, args := buildFilter(f)
	query := selectJob + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	return r.list(ctx, query, args...)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]string, error) {
	query := `SELECT id FROM jobs WHERE deadline < $1 ORDER BY deadline`
	args := []any{now}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return r.ids(ctx, query, args...)
}

func (r *PostgresRepository) ListIDsByRecruiter(ctx context.Context, recruiterID string) ([]string, error) {
	return r.ids(ctx, `SELECT id FROM jobs WHERE posted_by = $1`, recruiterID)
}

func (r *PostgresRepository) ids(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) AddApplication(ctx context.Context, jobID, applicationID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET application_ids = array_append(application_ids, $2) WHERE id = $1`,
		jobID, applicationID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

// RemoveApplication drops the back-reference; a missing job is not an error.
func (r *PostgresRepository) RemoveApplication(ctx context.Context, jobID, applicationID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET application_ids = array_remove(application_ids, $2) WHERE id = $1`,
		jobID, applicationID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context, activeOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM jobs`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrJobNotFound
	}
	return nil
}
