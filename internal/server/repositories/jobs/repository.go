// Package jobs stores job postings and the back-references from a job to its
// applications.
package jobs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Job, error)
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f models.JobFilter) ([]*models.Job, error)
	// ListExpired returns ids of jobs whose deadline is strictly before now,
	// oldest deadline first and at most limit of them when limit > 0.
	ListExpired(ctx context.Context, now time.Time, limit int) ([]string, error)
	ListIDsByRecruiter(ctx context.Context, recruiterID string) ([]string, error)
	AddApplication(ctx context.Context, jobID, applicationID string) error
	RemoveApplication(ctx context.Context, jobID, applicationID string) error
	Count(ctx context.Context, activeOnly bool) (int, error)
}
