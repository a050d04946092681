// Package seekers stores job seeker accounts and their saved jobs.
package seekers

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.JobSeeker) error
	GetByID(ctx context.Context, id string) (*models.JobSeeker, error)
	GetByEmail(ctx context.Context, email string) (*models.JobSeeker, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.JobSeeker, error)
	List(ctx context.Context) ([]*models.JobSeeker, error)
	Count(ctx context.Context) (int, error)
	// Update persists every mutable column of s.
	Update(ctx context.Context, s *models.JobSeeker) error
	Delete(ctx context.Context, id string) error

	// SaveJob returns common.ErrJobAlreadySaved when the pair exists.
	SaveJob(ctx context.Context, seekerID, jobID string, at time.Time) error
	UnsaveJob(ctx context.Context, seekerID, jobID string) error
	DeleteSavedBySeeker(ctx context.Context, seekerID string) error
	DeleteSavedByJobs(ctx context.Context, jobIDs []string) error
}
