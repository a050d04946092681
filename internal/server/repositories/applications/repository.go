// Package applications is the ledger of job applications.
package applications

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type Repository interface {
	// Create fails with common.ErrDuplicateApplication when the applicant
	// already applied to the job.
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	// UpdateStatus sets the status and, when notes is non-nil, the notes.
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string, at time.Time) error
	ListByJob(ctx context.Context, jobID string) ([]*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]*models.Application, error)
	ListAll(ctx context.Context) ([]*models.Application, error)
	DeleteByJobs(ctx context.Context, jobIDs []string) (int64, error)
	DeleteByApplicant(ctx context.Context, applicantID string) ([]*models.Application, error)
	Count(ctx context.Context) (int, error)
}
