package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

// ApplicationService keeps the application ledger.
type ApplicationService struct {
	*env
	notes *NotificationService
	// strict enforces pending -> shortlisted -> {accepted, rejected}.
	strict bool
}

// Submit files an application of the calling job seeker to jobID, snapshots
// the seeker's resume and tells the job's recruiter about it.
func (s *ApplicationService) Submit(ctx context.Context, p models.Principal, jobID string) (*models.Application, error) {
	if p.Role != models.RoleJobSeeker {
		return nil, common.ErrRoleNotAllowed
	}

	var (
		app  *models.Application
		note *models.Notification
	)
	err := s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		seeker, err := s.rm.JobSeekers(tx).GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if seeker.Resume == "" {
			return common.ErrResumeMissing
		}

		job, err := s.rm.Jobs(tx).GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		if !job.IsActive {
			return common.ErrJobInactive
		}

		exists, err := s.rm.Applications(tx).Exists(ctx, job.ID, seeker.ID)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrDuplicateApplication
		}

		now := s.utc()
		app = &models.Application{
			ID:          s.newID(),
			JobID:       job.ID,
			ApplicantID: seeker.ID,
			Resume:      seeker.Resume,
			Status:      models.ApplicationPending,
			AppliedAt:   now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.rm.Applications(tx).Create(ctx, app); err != nil {
			return err
		}
		if err := s.rm.Jobs(tx).AddApplication(ctx, job.ID, app.ID); err != nil {
			return fmt.Errorf("error linking application: %w", err)
		}

		note = models.ApplicationSubmitted(job, app, seeker.FullName)
		return s.notes.create(ctx, tx, note)
	})
	if err != nil {
		return nil, err
	}

	s.notes.publish(ctx, note)
	return app, nil
}

// UpdateStatus moves an application to status. Notes replace the stored
// notes when non-nil. The applicant is notified of accepted and rejected
// decisions only.
func (s *ApplicationService) UpdateStatus(ctx context.Context, p models.Principal, id string, status models.ApplicationStatus, notes *string) (*models.Application, error) {
	if !status.Valid() {
		return nil, common.ErrInvalidStatus
	}

	var (
		app  *models.Application
		note *models.Notification
	)
	err := s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		app, err = s.rm.Applications(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		job, err := s.rm.Jobs(tx).GetByID(ctx, app.JobID)
		if err != nil {
			return err
		}
		if err := authorizeJob(p, job); err != nil {
			return err
		}
		if s.strict && !app.Status.CanMoveTo(status) {
			return fmt.Errorf("%w: %s to %s", common.ErrInvalidTransition, app.Status, status)
		}

		now := s.utc()
		if err := s.rm.Applications(tx).UpdateStatus(ctx, app.ID, status, notes, now); err != nil {
			return err
		}
		app.Status = status
		if notes != nil {
			app.Notes = *notes
		}
		app.UpdatedAt = now

		note = models.ApplicationDecided(job, app)
		if note == nil {
			return nil
		}
		return s.notes.create(ctx, tx, note)
	})
	if err != nil {
		return nil, err
	}

	s.notes.publish(ctx, note)
	return app, nil
}

// ListByJob returns a job's applications with applicant details, newest
// first. Only the job's recruiter and admins may see them.
func (s *ApplicationService) ListByJob(ctx context.Context, p models.Principal, jobID string) ([]*models.ApplicationWithApplicant, error) {
	db := s.rm.Conn()
	job, err := s.rm.Jobs(db).GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := authorizeJob(p, job); err != nil {
		return nil, fmt.Errorf("%w: not authorized", common.ErrForbidden)
	}

	apps, err := s.rm.Applications(db).ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	seekers, err := s.applicants(ctx, db, apps)
	if err != nil {
		return nil, err
	}

	out := make([]*models.ApplicationWithApplicant, 0, len(apps))
	for _, a := range apps {
		item := &models.ApplicationWithApplicant{Application: a}
		if js, ok := seekers[a.ApplicantID]; ok {
			item.Applicant = js.Summary()
		}
		out = append(out, item)
	}
	return out, nil
}

// ListMine returns the caller's applications with a summary of each job,
// newest first.
func (s *ApplicationService) ListMine(ctx context.Context, p models.Principal) ([]*models.ApplicationWithJob, error) {
	db := s.rm.Conn()
	apps, err := s.rm.Applications(db).ListByApplicant(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs(ctx, db, apps)
	if err != nil {
		return nil, err
	}

	out := make([]*models.ApplicationWithJob, 0, len(apps))
	for _, a := range apps {
		item := &models.ApplicationWithJob{Application: a}
		if j, ok := jobs[a.JobID]; ok {
			item.Job = j.Summary()
		}
		out = append(out, item)
	}
	return out, nil
}

// ListAll returns every application with both sides attached.
func (s *ApplicationService) ListAll(ctx context.Context) ([]*models.ApplicationOverview, error) {
	db := s.rm.Conn()
	apps, err := s.rm.Applications(db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs(ctx, db, apps)
	if err != nil {
		return nil, err
	}
	seekers, err := s.applicants(ctx, db, apps)
	if err != nil {
		return nil, err
	}

	out := make([]*models.ApplicationOverview, 0, len(apps))
	for _, a := range apps {
		item := &models.ApplicationOverview{Application: a}
		if j, ok := jobs[a.JobID]; ok {
			sum := j.Summary()
			item.Job = &sum
		}
		if js, ok := seekers[a.ApplicantID]; ok {
			sum := js.Summary()
			item.Applicant = &sum
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *ApplicationService) applicants(ctx context.Context, db dbx.DBTX, apps []*models.Application) (map[string]*models.JobSeeker, error) {
	out := map[string]*models.JobSeeker{}
	if len(apps) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.ApplicantID)
	}
	seekers, err := s.rm.JobSeekers(db).GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, js := range seekers {
		out[js.ID] = js
	}
	return out, nil
}

func (s *ApplicationService) jobs(ctx context.Context, db dbx.DBTX, apps []*models.Application) (map[string]*models.Job, error) {
	out := map[string]*models.Job{}
	if len(apps) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.JobID)
	}
	jobs, err := s.rm.Jobs(db).GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, j := range jobs {
		out[j.ID] = j
	}
	return out, nil
}
