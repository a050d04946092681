// Package recruiters stores recruiter accounts and their company profile.
package recruiters

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.Recruiter) error
	GetByID(ctx context.Context, id string) (*models.Recruiter, error)
	GetByEmail(ctx context.Context, email string) (*models.Recruiter, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Recruiter, error)
	List(ctx context.Context) ([]*models.Recruiter, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, r *models.Recruiter) error
	SetVerificationStatus(ctx context.Context, id string, status models.RecruiterStatus, at time.Time) error
	Delete(ctx context.Context, id string) error
}
