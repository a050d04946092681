// Package services contains the server-side business logic of the job board:
// authentication, profiles, job postings, applications, company verification,
// notifications and administration. Services talk to storage only through
// repomanager.RepositoryManager so the same code runs on Postgres and on the
// in-memory backend.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/events"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
	"github.com/google/uuid"
)

// env is the state shared by every service.
type env struct {
	rm    repomanager.RepositoryManager
	files *storage.Files
	pub   events.Publisher
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// Services groups the services built over one repository manager.
type Services struct {
	Auth          *AuthService
	Profiles      *ProfileService
	Jobs          *JobService
	Applications  *ApplicationService
	Verifications *VerificationService
	Notifications *NotificationService
	Admin         *AdminService
	Sweeper       *Sweeper

	env *env
}

func New(rm repomanager.RepositoryManager, files *storage.Files, pub events.Publisher, log logging.Logger, cfg *config.Config) *Services {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = logging.Nop{}
	}
	e := &env{
		rm:    rm,
		files: files,
		pub:   pub,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}

	notes := &NotificationService{env: e}
	sweeper := &Sweeper{env: e, batch: cfg.SweepBatchSize}
	jobs := &JobService{env: e, sweeper: sweeper}
	apps := &ApplicationService{env: e, notes: notes, strict: cfg.StrictApplicationTransitions}
	profiles := &ProfileService{env: e}

	return &Services{
		Auth:          newAuthService(e, cfg),
		Profiles:      profiles,
		Jobs:          jobs,
		Applications:  apps,
		Verifications: &VerificationService{env: e, notes: notes},
		Notifications: notes,
		Admin:         &AdminService{env: e, profiles: profiles, jobs: jobs},
		Sweeper:       sweeper,
		env:           e,
	}
}

// utc returns the current time truncated to microseconds, the precision
// Postgres keeps.
func (e *env) utc() time.Time {
	return e.now().UTC().Truncate(time.Microsecond)
}

// removeFiles deletes stored files, logging failures. It runs after the
// owning records are gone so a failed unlink only leaves an orphaned blob.
func (e *env) removeFiles(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := e.files.Remove(ctx, p); err != nil && !errors.Is(err, storage.ErrNotFound) {
			e.log.Warn(ctx, "error removing stored file", "path", p, "error", err)
		}
	}
}

// authorizeJob allows the owner of job and admins.
func authorizeJob(p models.Principal, job *models.Job) error {
	if p.IsAdmin() || (p.Role == models.RoleRecruiter && job.PostedBy == p.ID) {
		return nil
	}
	return common.ErrNotOwner
}

// loadPrincipal resolves id under role to its principal record.
func loadPrincipal(ctx context.Context, rm repomanager.RepositoryManager, db dbx.DBTX, id string, role models.Role) (models.Principal, error) {
	switch role {
	case models.RoleAdmin:
		a, err := rm.Admins(db).GetByID(ctx, id)
		if err != nil {
			return models.Principal{}, err
		}
		return a.Principal(), nil
	case models.RoleRecruiter:
		r, err := rm.Recruiters(db).GetByID(ctx, id)
		if err != nil {
			return models.Principal{}, err
		}
		return r.Principal(), nil
	case models.RoleJobSeeker:
		s, err := rm.JobSeekers(db).GetByID(ctx, id)
		if err != nil {
			return models.Principal{}, err
		}
		return s.Principal(), nil
	}
	return models.Principal{}, common.ErrInvalidToken
}
