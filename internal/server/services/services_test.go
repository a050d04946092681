package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	pdfData = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
)

type recordingPublisher struct {
	mu  sync.Mutex
	got []*models.Notification
	err error
}

func (p *recordingPublisher) Publish(_ context.Context, n *models.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, n)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []models.NotificationType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.NotificationType, 0, len(p.got))
	for _, n := range p.got {
		out = append(out, n.Type)
	}
	return out
}

type fixture struct {
	svc   *Services
	rm    *repomanager.MemoryRepositoryManager
	files *storage.Files
	pub   *recordingPublisher
	now   time.Time
}

func newFixture(t *testing.T, mutate ...func(*config.Config)) *fixture {
	t.Helper()

	disk, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDriver = config.DriverMemory
	for _, m := range mutate {
		m(cfg)
	}

	f := &fixture{
		rm:    repomanager.NewMemoryRepositoryManager(),
		files: storage.NewFiles(disk, cfg.PublicPrefix, cfg.MaxUploadSize),
		pub:   &recordingPublisher{},
		now:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.svc = New(f.rm, f.files, f.pub, logging.Nop{}, cfg)
	f.svc.env.now = func() time.Time { return f.now }
	f.svc.Auth.bcryptCost = bcrypt.MinCost
	return f
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func emailFor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
}

// seeker registers a job seeker. A non-empty resume path is stored on the
// profile directly.
func (f *fixture) seeker(t *testing.T, name string, skills []string, resume string) models.Principal {
	t.Helper()
	ctx := context.Background()
	sess, err := f.svc.Auth.RegisterJobSeeker(ctx, RegisterSeekerInput{
		FullName: name, Email: emailFor(name), Password: "Secret123", Phone: "9812345678",
	})
	require.NoError(t, err)

	if len(skills) > 0 || resume != "" {
		repo := f.rm.JobSeekers(nil)
		js, err := repo.GetByID(ctx, sess.Principal.ID)
		require.NoError(t, err)
		js.Skills = skills
		js.Resume = resume
		require.NoError(t, repo.Update(ctx, js))
	}
	return sess.Principal
}

func (f *fixture) recruiter(t *testing.T, company string, verified bool) models.Principal {
	t.Helper()
	ctx := context.Background()
	sess, err := f.svc.Auth.RegisterRecruiter(ctx, RegisterRecruiterInput{
		FullName: "Hiring Manager", Email: emailFor(company), Password: "Secret123",
		Phone: "9712345678", CompanyName: company,
	})
	require.NoError(t, err)
	if verified {
		require.NoError(t, f.rm.Recruiters(nil).SetVerificationStatus(ctx, sess.Principal.ID, models.RecruiterVerified, f.now))
	}
	return sess.Principal
}

func (f *fixture) admin(t *testing.T) models.Principal {
	t.Helper()
	a, err := f.svc.Admin.CreateAdmin(context.Background(), "root@example.com", "Admin1234")
	require.NoError(t, err)
	return a.Principal()
}

func draft(title string, category models.Category, skills ...string) models.JobDraft {
	return models.JobDraft{
		Title:          title,
		Description:    "We are hiring a " + title,
		SkillsRequired: skills,
		Salary:         models.Salary{Min: 50000, Max: 90000},
		Experience:     models.ExperienceJunior,
		JobType:        models.JobTypeFullTime,
		Location:       "Kathmandu",
		Category:       category,
	}
}

// job posts d for rec with a deadline a week ahead. Each call advances the
// clock a minute so creation order is observable.
func (f *fixture) job(t *testing.T, rec models.Principal, d models.JobDraft) *models.Job {
	t.Helper()
	if d.Deadline.IsZero() {
		d.Deadline = f.now.Add(7 * 24 * time.Hour)
	}
	j, err := f.svc.Jobs.Create(context.Background(), rec, d)
	require.NoError(t, err)
	f.advance(time.Minute)
	return j
}

func jobIDs(jobs []*models.JobWithCompany) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}
