package applications

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
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
	now  = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cols = []string{"id", "job_id", "applicant_id", "resume", "status", "notes", "applied_at", "created_at", "updated_at"}
)

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	a := &models.Application{ID: "a1", JobID: "j1", ApplicantID: "s1", Resume: "/uploads/resumes/cv.pdf",
		Status: models.ApplicationPending, AppliedAt: now, CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(`INSERT\s+INTO\s+applications`).
		WithArgs("a1", "j1", "s1", "/uploads/resumes/cv.pdf", "pending", "", now, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), a))

	mock.ExpectExec(`INSERT\s+INTO\s+applications`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: uniqueJobApplicant})
	assert.ErrorIs(t, repo.Create(context.Background(), a), common.ErrDuplicateApplication)

	mock.ExpectExec(`INSERT\s+INTO\s+applications`).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	err := repo.Create(context.Background(), a)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrDuplicateApplication)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDAndExists(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`FROM\s+applications\s+WHERE\s+id\s*=\s*\$1`).WithArgs("a1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("a1", "j1", "s1", "cv", "shortlisted", "good", now, now, now))
	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationShortlisted, got.Status)
	assert.Equal(t, "good", got.Notes)

	mock.ExpectQuery(`FROM\s+applications\s+WHERE\s+id`).WithArgs("a2").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(ctx, "a2")
	assert.ErrorIs(t, err, common.ErrApplicationNotFound)

	mock.ExpectQuery(`SELECT\s+EXISTS`).WithArgs("j1", "s1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.Exists(ctx, "j1", "s1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()
	notes := "strong profile"

	mock.ExpectExec(`SET\s+status\s*=\s*\$2,\s*notes\s*=\s*COALESCE\(\$3,\s*notes\)`).
		WithArgs("a1", "accepted", sql.NullString{String: notes, Valid: true}, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(ctx, "a1", models.ApplicationAccepted, &notes, now))

	mock.ExpectExec(`UPDATE\s+applications`).
		WithArgs("a1", "rejected", nil, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(ctx, "a1", models.ApplicationRejected, nil, now))

	mock.ExpectExec(`UPDATE\s+applications`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "nope", models.ApplicationRejected, nil, now), common.ErrApplicationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByJob(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE\s+job_id\s*=\s*\$1\s+ORDER\s+BY\s+applied_at\s+DESC`).WithArgs("j1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("a2", "j1", "s2", "cv", "pending", "", now, now, now).
			AddRow("a1", "j1", "s1", "cv", "pending", "", now.Add(-time.Hour), now, now))
	got, err := repo.ListByJob(context.Background(), "j1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].ID)
}

func TestDeletes(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`DELETE\s+FROM\s+applications\s+WHERE\s+job_id\s*=\s*ANY\(\$1\)`).
		WithArgs(`{"j1","j2"}`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := repo.DeleteByJobs(ctx, []string{"j1", "j2"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	mock.ExpectQuery(`DELETE\s+FROM\s+applications\s+WHERE\s+applicant_id\s*=\s*\$1\s+RETURNING`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("a1", "j1", "s1", "cv", "pending", "", now, now, now))
	removed, err := repo.DeleteByApplicant(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "j1", removed[0].JobID)
	require.NoError(t, mock.ExpectationsWereMet())
}
