package jobs

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var (
	now     = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	jobCols = []string{"id", "title", "description", "skills_required", "salary_min", "salary_max",
		"experience", "job_type", "location", "category", "company_name", "deadline", "posted_by",
		"is_active", "application_ids", "created_at", "updated_at"}
)

func jobRow(rows *sqlmock.Rows, id, title string) *sqlmock.Rows {
	return rows.AddRow(id, title, "desc", `{Go,SQL}`, 1000.0, 2000.0, "1-3 years", "Full-time",
		"Kathmandu", "IT", "Acme", now.Add(24*time.Hour), "r1", true, `{a1}`, now, now)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	j := &models.Job{ID: "j1", Title: "Backend", Description: "desc", SkillsRequired: []string{"Go"},
		Salary: models.Salary{Min: 1, Max: 2}, Experience: models.ExperienceJunior,
		JobType: models.JobTypeFullTime, Location: "Pokhara", Category: models.CategoryIT,
		CompanyName: "Acme", Deadline: now, PostedBy: "r1", IsActive: true, CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+jobs\b.*\$17\)\s*$`).
		WithArgs("j1", "Backend", "desc", `{"Go"}`, 1.0, 2.0, "1-3 years", "Full-time", "Pokhara",
			"IT", "Acme", now, "r1", true, `{}`, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), j))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+jobs\s+WHERE\s+id\s*=\s*\$1$`).WithArgs("j1").
		WillReturnRows(jobRow(sqlmock.NewRows(jobCols), "j1", "Backend"))

	got, err := repo.GetByID(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, got.SkillsRequired)
	assert.Equal(t, []string{"a1"}, got.ApplicationIDs)
	assert.Equal(t, models.Salary{Min: 1000, Max: 2000}, got.Salary)

	mock.ExpectQuery(`FROM\s+jobs\s+WHERE\s+id`).WithArgs("missing").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrJobNotFound)
}

func TestBuildFilter(t *testing.T) {
	t.Parallel()
	minSalary, maxSalary := 500.0, 3000.0
	cutoff := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    models.JobFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "default only active",
			wantWhere: " WHERE is_active = TRUE",
		},
		{
			name:   "include inactive with no other filters",
			filter: models.JobFilter{IncludeInactive: true},
		},
		{
			name: "all filters",
			filter: models.JobFilter{
				PostedBy:   "r1",
				Category:   models.CategoryIT,
				Experience: models.ExperienceMid,
				JobType:    models.JobTypePartTime,
				Location:   "kath",
				MinSalary:  &minSalary,
				MaxSalary:  &maxSalary,
				Search:     "50%",
			},
			wantWhere: " WHERE is_active = TRUE AND posted_by = $1 AND category = $2 AND experience = $3" +
				" AND job_type = $4 AND location ILIKE $5 AND salary_min >= $6 AND salary_max <= $7" +
				" AND (title ILIKE $8 OR description ILIKE $8 OR company_name ILIKE $8)",
			wantArgs: []any{"r1", "IT", "3-5 years", "Part-time", "%kath%", 500.0, 3000.0, `%50\%%`},
		},
		{
			name:      "not expired",
			filter:    models.JobFilter{NotExpiredAt: cutoff},
			wantWhere: " WHERE is_active = TRUE AND deadline >= $1",
			wantArgs:  []any{cutoff},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildFilter(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE\s+is_active\s*=\s*TRUE\s+AND\s+skills_required\s*&&\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+\$2$`).
		WithArgs(`{"Python"}`, 10).
		WillReturnRows(jobRow(jobRow(sqlmock.NewRows(jobCols), "j2", "Newer"), "j1", "Older"))

	got, err := repo.List(context.Background(), models.JobFilter{Skills: []string{"Python"}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "j2", got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListExpired(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT\s+id\s+FROM\s+jobs\s+WHERE\s+deadline\s*<\s*\$1\s+ORDER\s+BY\s+deadline\s+LIMIT\s+\$2`).
		WithArgs(now, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("j1").AddRow("j2"))

	ids, err := repo.ListExpired(ctx, now, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"j1", "j2"}, ids)

	mock.ExpectQuery(`WHERE\s+deadline\s*<\s*\$1\s+ORDER\s+BY\s+deadline$`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	ids, err = repo.ListExpired(ctx, now, 0)
	require.NoError(t, err)
	assert.Empty(t, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationBackReferences(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`array_append\(application_ids,\s*\$2\)`).WithArgs("j1", "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.AddApplication(ctx, "j1", "a1"))

	mock.ExpectExec(`array_append`).WithArgs("gone", "a1").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.AddApplication(ctx, "gone", "a1"), common.ErrJobNotFound)

	mock.ExpectExec(`array_remove\(application_ids,\s*\$2\)`).WithArgs("gone", "a1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.RemoveApplication(ctx, "gone", "a1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+jobs\s+WHERE\s+is_active\s*=\s*TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	n, err := repo.Count(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
