package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmailInUse = fmt.Errorf("%w: email is already in use", common.ErrConflict)

type AdminProfileUpdate struct {
	Email           *string
	CurrentPassword string
	NewPassword     string
}

type AdminSeekerUpdate struct {
	FullName *string
	Phone    *string
	IsActive *bool
}

type AdminRecruiterUpdate struct {
	FullName           *string
	CompanyName        *string
	Phone              *string
	IsActive           *bool
	VerificationStatus *models.RecruiterStatus
}

// AdminService covers the back office: the admin's own account, dashboard
// counters and management of other principals.
type AdminService struct {
	*env
	profiles *ProfileService
	jobs     *JobService
}

// CreateAdmin adds an admin account. It is used by the operator CLI.
func (s *AdminService) CreateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, common.Validationf("email is required")
	}
	if !StrongPassword(password) {
		return nil, common.Validationf("password must be at least 8 characters and include at least one uppercase letter and one number")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := s.utc()
	a := &models.Admin{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.rm.Admins(s.rm.Conn()).Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AdminService) Profile(ctx context.Context, id string) (*models.Admin, error) {
	return s.rm.Admins(s.rm.Conn()).GetByID(ctx, id)
}

// UpdateProfile changes the admin's email and, when NewPassword is set,
// the password after checking CurrentPassword.
func (s *AdminService) UpdateProfile(ctx context.Context, id string, u AdminProfileUpdate) (*models.Admin, error) {
	var a *models.Admin
	err := s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Admins(tx)
		var err error
		a, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if u.Email != nil {
			email := models.NormalizeEmail(*u.Email)
			if email != "" && email != a.Email {
				other, err := repo.GetByEmail(ctx, email)
				switch {
				case err == nil && other.ID != a.ID:
					return ErrEmailInUse
				case err != nil && !errors.Is(err, common.ErrPrincipalNotFound):
					return err
				}
				a.Email = email
			}
		}

		if u.NewPassword != "" {
			if u.CurrentPassword == "" {
				return common.Validationf("current password is required to set a new password")
			}
			if !checkPassword(a.PasswordHash, u.CurrentPassword) {
				return ErrWrongPassword
			}
			if !StrongPassword(u.NewPassword) {
				return ErrWeakPassword
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(u.NewPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("error hashing password: %w", err)
			}
			a.PasswordHash = string(hash)
		}

		a.UpdatedAt = s.utc()
		return repo.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AdminService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	db := s.rm.Conn()
	var (
		st  models.DashboardStats
		err error
	)
	if st.TotalJobSeekers, err = s.rm.JobSeekers(db).Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalRecruiters, err = s.rm.Recruiters(db).Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalJobs, err = s.rm.Jobs(db).Count(ctx, false); err != nil {
		return nil, err
	}
	if st.ActiveJobs, err = s.rm.Jobs(db).Count(ctx, true); err != nil {
		return nil, err
	}
	if st.TotalApplications, err = s.rm.Applications(db).Count(ctx); err != nil {
		return nil, err
	}
	if st.PendingVerifications, err = s.rm.Verifications(db).CountByStatus(ctx, models.VerificationPending); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *AdminService) JobSeekers(ctx context.Context) ([]*models.JobSeeker, error) {
	return s.rm.JobSeekers(s.rm.Conn()).List(ctx)
}

func (s *AdminService) Recruiters(ctx context.Context) ([]*models.Recruiter, error) {
	return s.rm.Recruiters(s.rm.Conn()).List(ctx)
}

func (s *AdminService) SetJobSeekerActive(ctx context.Context, id string, active bool) (*models.JobSeeker, error) {
	return s.UpdateJobSeeker(ctx, id, AdminSeekerUpdate{IsActive: &active})
}

func (s *AdminService) SetRecruiterActive(ctx context.Context, id string, active bool) (*models.Recruiter, error) {
	return s.UpdateRecruiter(ctx, id, AdminRecruiterUpdate{IsActive: &active})
}

func (s *AdminService) UpdateJobSeeker(ctx context.Context, id string, u AdminSeekerUpdate) (*models.JobSeeker, error) {
	if u.Phone != nil && *u.Phone != "" && !ValidPhone(*u.Phone) {
		return nil, ErrInvalidPhone
	}
	repo := s.rm.JobSeekers(s.rm.Conn())
	js, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.FullName != nil && strings.TrimSpace(*u.FullName) != "" {
		js.FullName = strings.TrimSpace(*u.FullName)
	}
	if u.Phone != nil && *u.Phone != "" {
		js.Phone = *u.Phone
	}
	if u.IsActive != nil {
		js.IsActive = *u.IsActive
	}
	js.UpdatedAt = s.utc()
	if err := repo.Update(ctx, js); err != nil {
		return nil, err
	}
	return js, nil
}

// UpdateRecruiter edits a recruiter. Unknown verification statuses are
// ignored.
func (s *AdminService) UpdateRecruiter(ctx context.Context, id string, u AdminRecruiterUpdate) (*models.Recruiter, error) {
	if u.Phone != nil && *u.Phone != "" && !ValidPhone(*u.Phone) {
		return nil, ErrInvalidPhone
	}
	repo := s.rm.Recruiters(s.rm.Conn())
	rec, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.FullName != nil && strings.TrimSpace(*u.FullName) != "" {
		rec.FullName = strings.TrimSpace(*u.FullName)
	}
	if u.CompanyName != nil && strings.TrimSpace(*u.CompanyName) != "" {
		rec.CompanyName = strings.TrimSpace(*u.CompanyName)
	}
	if u.Phone != nil && *u.Phone != "" {
		rec.Phone = *u.Phone
	}
	if u.IsActive != nil {
		rec.IsActive = *u.IsActive
	}
	if u.VerificationStatus != nil && u.VerificationStatus.Valid() {
		rec.VerificationStatus = *u.VerificationStatus
	}
	rec.UpdatedAt = s.utc()
	if err := repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *AdminService) DeleteJobSeeker(ctx context.Context, id string) error {
	return s.profiles.DeleteJobSeeker(ctx, id)
}

func (s *AdminService) DeleteRecruiter(ctx context.Context, id string) error {
	return s.profiles.DeleteRecruiter(ctx, id)
}

func (s *AdminService) DeleteJob(ctx context.Context, p models.Principal, id string) error {
	return s.jobs.Delete(ctx, p, id)
}
