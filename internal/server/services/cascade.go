package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
)

// deleteJobs removes jobs together with their applications, the
// notifications about them and saved-job entries. Dependents go first and
// already deleted jobs are skipped, so the cascade can be repeated.
func deleteJobs(ctx context.Context, rm repomanager.RepositoryManager, tx dbx.DBTX, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if _, err := rm.Applications(tx).DeleteByJobs(ctx, ids); err != nil {
		return 0, fmt.Errorf("error deleting applications: %w", err)
	}
	if _, err := rm.Notifications(tx).DeleteByJobs(ctx, ids); err != nil {
		return 0, fmt.Errorf("error deleting notifications: %w", err)
	}
	if err := rm.JobSeekers(tx).DeleteSavedByJobs(ctx, ids); err != nil {
		return 0, fmt.Errorf("error deleting saved jobs: %w", err)
	}

	deleted := 0
	repo := rm.Jobs(tx)
	for _, id := range ids {
		err := repo.Delete(ctx, id)
		if errors.Is(err, common.ErrJobNotFound) {
			continue
		}
		if err != nil {
			return deleted, fmt.Errorf("error deleting job %s: %w", id, err)
		}
		deleted++
	}
	return deleted, nil
}

// deleteSeeker removes a job seeker with their applications (and the
// back-references to them), saved jobs and refresh tokens. It returns the
// deleted record and any older resumes the applications still pointed at, so
// the caller can drop the files once committed.
func deleteSeeker(ctx context.Context, rm repomanager.RepositoryManager, tx dbx.DBTX, id string) (*models.JobSeeker, []string, error) {
	seeker, err := rm.JobSeekers(tx).GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	apps, err := rm.Applications(tx).DeleteByApplicant(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("error deleting applications: %w", err)
	}
	var snapshots []string
	jobsRepo := rm.Jobs(tx)
	for _, a := range apps {
		if a.Resume != "" && a.Resume != seeker.Resume && !slices.Contains(snapshots, a.Resume) {
			snapshots = append(snapshots, a.Resume)
		}
		if err := jobsRepo.RemoveApplication(ctx, a.JobID, a.ID); err != nil && !errors.Is(err, common.ErrJobNotFound) {
			return nil, nil, fmt.Errorf("error detaching application %s: %w", a.ID, err)
		}
	}

	if err := rm.JobSeekers(tx).DeleteSavedBySeeker(ctx, id); err != nil {
		return nil, nil, fmt.Errorf("error deleting saved jobs: %w", err)
	}
	if err := rm.RefreshTokens(tx).DeleteByPrincipal(ctx, id); err != nil {
		return nil, nil, fmt.Errorf("error deleting refresh tokens: %w", err)
	}
	if err := rm.JobSeekers(tx).Delete(ctx, id); err != nil {
		return nil, nil, err
	}
	return seeker, snapshots, nil
}

// deleteRecruiter removes a recruiter, their jobs (with the job cascade),
// their verification record and refresh tokens. It returns the paths of the
// verification documents that were on file.
func deleteRecruiter(ctx context.Context, rm repomanager.RepositoryManager, tx dbx.DBTX, id string) ([]string, error) {
	if _, err := rm.Recruiters(tx).GetByID(ctx, id); err != nil {
		return nil, err
	}

	jobIDs, err := rm.Jobs(tx).ListIDsByRecruiter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	if _, err := deleteJobs(ctx, rm, tx, jobIDs); err != nil {
		return nil, err
	}

	var docs []string
	v, err := rm.Verifications(tx).GetByRecruiter(ctx, id)
	switch {
	case err == nil:
		for _, d := range v.Documents {
			docs = append(docs, d.Path)
		}
		if err := rm.Verifications(tx).DeleteByRecruiter(ctx, id); err != nil {
			return nil, fmt.Errorf("error deleting verification: %w", err)
		}
	case !errors.Is(err, common.ErrVerificationNotFound):
		return nil, err
	}

	if err := rm.RefreshTokens(tx).DeleteByPrincipal(ctx, id); err != nil {
		return nil, fmt.Errorf("error deleting refresh tokens: %w", err)
	}
	if err := rm.Recruiters(tx).Delete(ctx, id); err != nil {
		return nil, err
	}
	return docs, nil
}
