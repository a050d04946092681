package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newJob(id, recruiter string, created time.Time, skills ...string) *models.Job {
	return &models.Job{
		ID: id, Title: "Job " + id, Description: "d", SkillsRequired: skills,
		Salary: models.Salary{Min: 100, Max: 200}, Experience: models.ExperienceAny,
		JobType: models.JobTypeFullTime, Location: "Kathmandu", Category: models.CategoryIT,
		CompanyName: "Acme", Deadline: created.Add(48 * time.Hour), PostedBy: recruiter,
		IsActive: true, CreatedAt: created, UpdatedAt: created,
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()
	s := NewStore()
	jobs := NewJobRepository(s)
	ctx := context.Background()

	require.NoError(t, jobs.Create(ctx, newJob("j1", "r1", t0)))

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context, _ dbx.DBTX) error {
		require.NoError(t, jobs.Delete(ctx, "j1"))
		require.NoError(t, jobs.Create(ctx, newJob("j2", "r1", t0)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = jobs.GetByID(ctx, "j1")
	require.NoError(t, err)
	_, err = jobs.GetByID(ctx, "j2")
	assert.ErrorIs(t, err, common.ErrJobNotFound)
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	t.Parallel()
	s := NewStore()
	jobs := NewJobRepository(s)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.WithTx(ctx, func(ctx context.Context, _ dbx.DBTX) error {
			_ = jobs.Create(ctx, newJob("j1", "r1", t0))
			panic("kaboom")
		})
	})
	n, err := jobs.Count(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWithTxCommits(t *testing.T) {
	t.Parallel()
	s := NewStore()
	jobs := NewJobRepository(s)
	ctx := context.Background()

	require.NoError(t, s.WithTx(ctx, func(ctx context.Context, _ dbx.DBTX) error {
		return jobs.Create(ctx, newJob("j1", "r1", t0))
	}))
	_, err := jobs.GetByID(ctx, "j1")
	require.NoError(t, err)
}

func TestWithTxRollbackKeepsOutsideWrites(t *testing.T) {
	t.Parallel()
	s := NewStore()
	jobs := NewJobRepository(s)
	ctx := context.Background()
	require.NoError(t, jobs.Create(ctx, newJob("j1", "r1", t0)))

	entered := make(chan struct{})
	release := make(chan struct{})
	txErr := make(chan error, 1)
	go func() {
		txErr <- s.WithTx(ctx, func(ctx context.Context, _ dbx.DBTX) error {
			close(entered)
			<-release
			return common.ErrResumeMissing
		})
	}()
	<-entered

	updated := make(chan error, 1)
	go func() {
		j := newJob("j1", "r1", t0)
		j.Title = "Renamed"
		updated <- jobs.Update(ctx, j)
	}()

	select {
	case err := <-updated:
		t.Fatalf("update finished while a transaction was running: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	assert.ErrorIs(t, <-txErr, common.ErrResumeMissing)
	require.NoError(t, <-updated)

	got, err := jobs.GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestWithTxNestedJoinsOuter(t *testing.T) {
	t.Parallel()
	s := NewStore()
	jobs := NewJobRepository(s)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context, _ dbx.DBTX) error {
		require.NoError(t, s.WithTx(ctx, func(ctx context.Context, _ dbx.DBTX) error {
			return jobs.Create(ctx, newJob("j1", "r1", t0))
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = jobs.GetByID(ctx, "j1")
	assert.ErrorIs(t, err, common.ErrJobNotFound)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	t.Parallel()
	s := NewStore()
	jobs := NewJobRepository(s)
	ctx := context.Background()
	require.NoError(t, jobs.Create(ctx, newJob("j1", "r1", t0, "Go")))

	got, err := jobs.GetByID(ctx, "j1")
	require.NoError(t, err)
	got.SkillsRequired[0] = "Rust"
	got.Title = "changed"

	again, err := jobs.GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, again.SkillsRequired)
	assert.Equal(t, "Job j1", again.Title)
}

func TestJobListFilterAndOrder(t *testing.T) {
	t.Parallel()
	s := NewStore()
	jobs := NewJobRepository(s)
	ctx := context.Background()

	require.NoError(t, jobs.Create(ctx, newJob("old", "r1", t0, "Python")))
	require.NoError(t, jobs.Create(ctx, newJob("new", "r1", t0.Add(time.Hour), "Python", "Django")))
	require.NoError(t, jobs.Create(ctx, newJob("same-time", "r2", t0.Add(time.Hour), "Sales")))
	inactive := newJob("inactive", "r1", t0.Add(2*time.Hour), "Python")
	inactive.IsActive = false
	require.NoError(t, jobs.Create(ctx, inactive))

	all, err := jobs.List(ctx, models.JobFilter{})
	require.NoError(t, err)
	var ids []string
	for _, j := range all {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{"same-time", "new", "old"}, ids)

	py, err := jobs.List(ctx, models.JobFilter{Skills: []string{"Python"}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, py, 1)
	assert.Equal(t, "new", py[0].ID)

	withInactive, err := jobs.List(ctx, models.JobFilter{IncludeInactive: true, PostedBy: "r1"})
	require.NoError(t, err)
	assert.Len(t, withInactive, 3)
}

func TestListExpired(t *testing.T) {
	t.Parallel()
	s := NewStore()
	jobs := NewJobRepository(s)
	ctx := context.Background()

	a := newJob("a", "r1", t0)
	a.Deadline = t0.Add(-2 * time.Hour)
	b := newJob("b", "r1", t0)
	b.Deadline = t0.Add(-time.Hour)
	b.IsActive = false
	c := newJob("c", "r1", t0)
	edge := newJob("edge", "r1", t0)
	edge.Deadline = t0
	for _, j := range []*models.Job{a, b, c, edge} {
		require.NoError(t, jobs.Create(ctx, j))
	}

	ids, err := jobs.ListExpired(ctx, t0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	ids, err = jobs.ListExpired(ctx, t0, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}

func TestApplicationsUniqueAndBackReferences(t *testing.T) {
	t.Parallel()
	s := NewStore()
	jobs := NewJobRepository(s)
	apps := NewApplicationRepository(s)
	ctx := context.Background()
	require.NoError(t, jobs.Create(ctx, newJob("j1", "r1", t0)))

	app := &models.Application{ID: "a1", JobID: "j1", ApplicantID: "s1", Status: models.ApplicationPending, AppliedAt: t0}
	require.NoError(t, apps.Create(ctx, app))
	require.NoError(t, jobs.AddApplication(ctx, "j1", "a1"))

	dup := &models.Application{ID: "a2", JobID: "j1", ApplicantID: "s1", AppliedAt: t0}
	assert.ErrorIs(t, apps.Create(ctx, dup), common.ErrDuplicateApplication)

	removed, err := apps.DeleteByApplicant(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, removed, 1)
	require.NoError(t, jobs.RemoveApplication(ctx, "j1", "a1"))

	j, err := jobs.GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.Empty(t, j.ApplicationIDs)
}

func TestSavedJobs(t *testing.T) {
	t.Parallel()
	s := NewStore()
	seekers := NewSeekerRepository(s)
	ctx := context.Background()
	require.NoError(t, seekers.Create(ctx, &models.JobSeeker{ID: "s1", Email: "a@b.io", IsActive: true}))

	require.NoError(t, seekers.SaveJob(ctx, "s1", "j1", t0))
	require.NoError(t, seekers.SaveJob(ctx, "s1", "j2", t0))
	assert.ErrorIs(t, seekers.SaveJob(ctx, "s1", "j1", t0), common.ErrJobAlreadySaved)

	got, err := seekers.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"j1", "j2"}, got.SavedJobs)

	require.NoError(t, seekers.DeleteSavedByJobs(ctx, []string{"j1"}))
	got, err = seekers.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"j2"}, got.SavedJobs)

	assert.ErrorIs(t, seekers.Create(ctx, &models.JobSeeker{ID: "s2", Email: "a@b.io"}), common.ErrEmailTaken)
}

func TestNotifications(t *testing.T) {
	t.Parallel()
	s := NewStore()
	repo := NewNotificationRepository(s)
	ctx := context.Background()
	rc := models.Recipient{Kind: models.RecipientRecruiter, ID: "r1"}
	other := models.Recipient{Kind: models.RecipientJobSeeker, ID: "r1"}

	require.NoError(t, repo.Create(ctx, &models.Notification{ID: "n1", Recipient: rc, RelatedJob: "j1", CreatedAt: t0}))
	require.NoError(t, repo.Create(ctx, &models.Notification{ID: "n2", Recipient: rc, CreatedAt: t0.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &models.Notification{ID: "n3", Recipient: other, CreatedAt: t0}))

	list, err := repo.ListByRecipient(ctx, rc)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n2", list[0].ID)

	n, err := repo.MarkAllRead(ctx, rc)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	unread, err := repo.CountUnread(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	deleted, err := repo.DeleteByJobs(ctx, []string{"j1"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
	assert.ErrorIs(t, repo.MarkRead(ctx, "n1"), common.ErrNotificationNotFound)
}

func TestRefreshTokens(t *testing.T) {
	t.Parallel()
	s := NewStore()
	repo := NewRefreshTokenRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", models.RoleAdmin, "t1", t0))
	require.NoError(t, repo.Create(ctx, "u1", models.RoleAdmin, "t2", t0))

	rt, err := repo.Find(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, rt.Role)

	require.NoError(t, repo.DeleteByPrincipal(ctx, "u1"))
	_, err = repo.Find(ctx, "t2")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
