// Package verifications stores the company verification record of each
// recruiter.
package verifications

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, v *models.CompanyVerification) error
	GetByID(ctx context.Context, id string) (*models.CompanyVerification, error)
	GetByRecruiter(ctx context.Context, recruiterID string) (*models.CompanyVerification, error)
	Update(ctx context.Context, v *models.CompanyVerification) error
	// List returns records newest first; an empty status returns all.
	List(ctx context.Context, status models.VerificationStatus) ([]*models.CompanyVerification, error)
	DeleteByRecruiter(ctx context.Context, recruiterID string) error
	CountByStatus(ctx context.Context, status models.VerificationStatus) (int, error)
}
