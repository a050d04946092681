package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

// RecommendationLimit caps the number of recommended jobs.
const RecommendationLimit = 10

// JobService manages job postings.
type JobService struct {
	*env
	sweeper *Sweeper
}

func validateJob(j *models.Job) error {
	switch {
	case strings.TrimSpace(j.Title) == "":
		return common.Validationf("title is required")
	case strings.TrimSpace(j.Description) == "":
		return common.Validationf("description is required")
	case strings.TrimSpace(j.Location) == "":
		return common.Validationf("location is required")
	case !j.Experience.Valid():
		return common.Validationf("invalid experience level %q", j.Experience)
	case !j.JobType.Valid():
		return common.Validationf("invalid job type %q", j.JobType)
	case !j.Category.Valid():
		return common.Validationf("invalid category %q", j.Category)
	case j.Deadline.IsZero():
		return common.Validationf("deadline is required")
	case !j.Salary.Valid():
		return common.ErrInvalidSalaryRange
	}
	return nil
}

// Create posts a job for a verified recruiter. The company name is copied
// from the recruiter's profile.
func (s *JobService) Create(ctx context.Context, p models.Principal, d models.JobDraft) (*models.Job, error) {
	if p.Role != models.RoleRecruiter {
		return nil, common.ErrRoleNotAllowed
	}
	db := s.rm.Conn()
	rec, err := s.rm.Recruiters(db).GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if rec.VerificationStatus != models.RecruiterVerified {
		return nil, common.ErrCompanyNotVerified
	}

	now := s.utc()
	job := &models.Job{
		ID:             s.newID(),
		Title:          strings.TrimSpace(d.Title),
		Description:    d.Description,
		SkillsRequired: models.NormalizeSkills(d.SkillsRequired),
		Salary:         d.Salary,
		Experience:     d.Experience,
		JobType:        d.JobType,
		Location:       strings.TrimSpace(d.Location),
		Category:       d.Category,
		CompanyName:    rec.CompanyName,
		Deadline:       d.Deadline.UTC(),
		PostedBy:       rec.ID,
		IsActive:       true,
		ApplicationIDs: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if d.IsActive != nil {
		job.IsActive = *d.IsActive
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}

	if err := s.rm.Jobs(db).Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Update applies patch to a job owned by the caller, or to any job for an
// admin. The salary range is re-validated on the merged result.
func (s *JobService) Update(ctx context.Context, p models.Principal, id string, patch models.JobPatch) (*models.Job, error) {
	repo := s.rm.Jobs(s.rm.Conn())
	job, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeJob(p, job); err != nil {
		return nil, err
	}

	patch.Apply(job)
	if patch.SkillsRequired != nil {
		job.SkillsRequired = models.NormalizeSkills(job.SkillsRequired)
	}
	job.Deadline = job.Deadline.UTC()
	if err := validateJob(job); err != nil {
		return nil, err
	}
	job.UpdatedAt = s.utc()

	if err := repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a job with its applications and notifications.
func (s *JobService) Delete(ctx context.Context, p models.Principal, id string) error {
	return s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		job, err := s.rm.Jobs(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authorizeJob(p, job); err != nil {
			return err
		}
		_, err = deleteJobs(ctx, s.rm, tx, []string{id})
		return err
	})
}

// Get returns a job with the public profile of the recruiter who posted it.
func (s *JobService) Get(ctx context.Context, id string) (*models.JobWithCompany, error) {
	db := s.rm.Conn()
	job, err := s.rm.Jobs(db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &models.JobWithCompany{Job: job}
	if rec, err := s.rm.Recruiters(db).GetByID(ctx, job.PostedBy); err == nil {
		profile := rec.CompanyProfile()
		out.Company = &profile
	}
	return out, nil
}

// List sweeps expired jobs and returns the jobs matching f, newest first.
// Only admins see inactive jobs.
func (s *JobService) List(ctx context.Context, p models.Principal, f models.JobFilter) ([]*models.JobWithCompany, error) {
	f.IncludeInactive = p.IsAdmin()
	return s.list(ctx, f)
}

// ListAll returns every job regardless of its active flag.
func (s *JobService) ListAll(ctx context.Context) ([]*models.JobWithCompany, error) {
	return s.list(ctx, models.JobFilter{IncludeInactive: true})
}

func (s *JobService) list(ctx context.Context, f models.JobFilter) ([]*models.JobWithCompany, error) {
	if _, err := s.sweeper.Sweep(ctx); err != nil {
		return nil, err
	}
	// a bounded sweep may leave expired rows behind
	f.NotExpiredAt = s.now()
	jobs, err := s.rm.Jobs(s.rm.Conn()).List(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.withCompanies(ctx, jobs)
}

func (s *JobService) withCompanies(ctx context.Context, jobs []*models.Job) ([]*models.JobWithCompany, error) {
	out := make([]*models.JobWithCompany, 0, len(jobs))
	if len(jobs) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.PostedBy)
	}
	recs, err := s.rm.Recruiters(s.rm.Conn()).GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]*models.CompanyProfile, len(recs))
	for _, r := range recs {
		profile := r.CompanyProfile()
		profiles[r.ID] = &profile
	}

	for _, j := range jobs {
		out = append(out, &models.JobWithCompany{Job: j, Company: profiles[j.PostedBy]})
	}
	return out, nil
}

// Recommend returns up to RecommendationLimit active jobs requiring at least
// one of the seeker's skills, newest first.
func (s *JobService) Recommend(ctx context.Context, p models.Principal) ([]*models.JobWithCompany, error) {
	if p.Role != models.RoleJobSeeker {
		return nil, common.ErrRoleNotAllowed
	}
	if _, err := s.sweeper.Sweep(ctx); err != nil {
		return nil, err
	}
	seeker, err := s.rm.JobSeekers(s.rm.Conn()).GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if len(seeker.Skills) == 0 {
		return []*models.JobWithCompany{}, nil
	}

	jobs, err := s.rm.Jobs(s.rm.Conn()).List(ctx, models.JobFilter{
		Skills:       seeker.Skills,
		NotExpiredAt: s.now(),
		Limit:        RecommendationLimit,
	})
	if err != nil {
		return nil, err
	}
	return s.withCompanies(ctx, jobs)
}

// ListByRecruiter returns the caller's own jobs, active or not, with their
// application counts.
func (s *JobService) ListByRecruiter(ctx context.Context, p models.Principal) ([]*models.RecruiterJob, error) {
	if _, err := s.sweeper.Sweep(ctx); err != nil {
		return nil, err
	}
	jobs, err := s.rm.Jobs(s.rm.Conn()).List(ctx, models.JobFilter{PostedBy: p.ID, IncludeInactive: true, NotExpiredAt: s.now()})
	if err != nil {
		return nil, err
	}
	out := make([]*models.RecruiterJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, &models.RecruiterJob{Job: j, ApplicationCount: len(j.ApplicationIDs)})
	}
	return out, nil
}
