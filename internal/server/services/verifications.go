package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
)

// MaxVerificationDocuments is the most documents one upload may carry.
const MaxVerificationDocuments = 5

var ErrNoDocuments = common.Validationf("please upload at least one document")

// VerificationService runs the company verification workflow: recruiters
// upload documents, admins approve or reject them.
type VerificationService struct {
	*env
	notes *NotificationService
}

// UploadDocuments replaces the recruiter's verification documents and puts
// both the record and the recruiter back to pending. Files that were
// replaced are deleted after the change is committed.
func (s *VerificationService) UploadDocuments(ctx context.Context, p models.Principal, uploads []storage.Upload) (*models.CompanyVerification, error) {
	if p.Role != models.RoleRecruiter {
		return nil, common.ErrRoleNotAllowed
	}
	if len(uploads) == 0 {
		return nil, ErrNoDocuments
	}
	if len(uploads) > MaxVerificationDocuments {
		return nil, common.Validationf("at most %d documents can be uploaded", MaxVerificationDocuments)
	}
	for _, u := range uploads {
		if _, err := s.files.Validate(storage.KindDocument, u); err != nil {
			return nil, err
		}
	}

	docs := make([]models.Document, 0, len(uploads))
	var saved []string
	for _, u := range uploads {
		st, err := s.files.Save(ctx, storage.KindDocument, p.ID, u)
		if err != nil {
			s.removeFiles(ctx, saved...)
			return nil, err
		}
		saved = append(saved, st.Path)
		docs = append(docs, models.Document{Filename: st.Filename, Path: st.Path, UploadedAt: st.UploadedAt.UTC()})
	}

	var (
		v   *models.CompanyVerification
		old []string
	)
	err := s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		now := s.utc()
		if err := s.rm.Recruiters(tx).SetVerificationStatus(ctx, p.ID, models.RecruiterPending, now); err != nil {
			return err
		}

		repo := s.rm.Verifications(tx)
		var err error
		v, err = repo.GetByRecruiter(ctx, p.ID)
		if errors.Is(err, common.ErrVerificationNotFound) {
			v = &models.CompanyVerification{
				ID:          s.newID(),
				RecruiterID: p.ID,
				Documents:   docs,
				Status:      models.VerificationPending,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			return repo.Create(ctx, v)
		}
		if err != nil {
			return err
		}

		for _, d := range v.Documents {
			old = append(old, d.Path)
		}
		v.Documents = docs
		v.Status = models.VerificationPending
		v.ReviewedBy = ""
		v.ReviewedAt = nil
		v.RejectionReason = ""
		v.UpdatedAt = now
		return repo.Update(ctx, v)
	})
	if err != nil {
		s.removeFiles(ctx, saved...)
		return nil, err
	}

	s.removeFiles(ctx, old...)
	return v, nil
}

// Approve marks the record approved, verifies the recruiter and notifies them.
func (s *VerificationService) Approve(ctx context.Context, p models.Principal, id string) (*models.CompanyVerification, error) {
	return s.review(ctx, p, id, models.VerificationApproved, "")
}

// Reject marks the record rejected with reason, or DefaultRejectionReason
// when empty, and notifies the recruiter.
func (s *VerificationService) Reject(ctx context.Context, p models.Principal, id, reason string) (*models.CompanyVerification, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = models.DefaultRejectionReason
	}
	return s.review(ctx, p, id, models.VerificationRejected, reason)
}

func (s *VerificationService) review(ctx context.Context, p models.Principal, id string, status models.VerificationStatus, reason string) (*models.CompanyVerification, error) {
	if !p.IsAdmin() {
		return nil, common.ErrRoleNotAllowed
	}

	var (
		v    *models.CompanyVerification
		note *models.Notification
	)
	err := s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		v, err = s.rm.Verifications(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		rec, err := s.rm.Recruiters(tx).GetByID(ctx, v.RecruiterID)
		if err != nil {
			return err
		}

		now := s.utc()
		v.Status = status
		v.ReviewedBy = p.ID
		v.ReviewedAt = &now
		v.RejectionReason = reason
		v.UpdatedAt = now
		if err := s.rm.Verifications(tx).Update(ctx, v); err != nil {
			return err
		}
		if err := s.rm.Recruiters(tx).SetVerificationStatus(ctx, rec.ID, status.RecruiterStatus(), now); err != nil {
			return err
		}

		if status == models.VerificationApproved {
			note = models.CompanyVerified(rec)
		} else {
			note = models.CompanyRejected(rec, reason)
		}
		return s.notes.create(ctx, tx, note)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "company verification reviewed", "verification", v.ID, "status", status, "admin", p.ID)
	s.notes.publish(ctx, note)
	return v, nil
}

// List returns verification records with their recruiters, newest first.
// An empty status lists all of them.
func (s *VerificationService) List(ctx context.Context, status models.VerificationStatus) ([]*models.VerificationWithRecruiter, error) {
	db := s.rm.Conn()
	vs, err := s.rm.Verifications(db).List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]*models.VerificationWithRecruiter, 0, len(vs))
	if len(vs) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(vs))
	for _, v := range vs {
		ids = append(ids, v.RecruiterID)
	}
	recs, err := s.rm.Recruiters(db).GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Recruiter, len(recs))
	for _, r := range recs {
		byID[r.ID] = r
	}

	for _, v := range vs {
		out = append(out, &models.VerificationWithRecruiter{CompanyVerification: v, Recruiter: byID[v.RecruiterID]})
	}
	return out, nil
}

func (s *VerificationService) Get(ctx context.Context, id string) (*models.VerificationWithRecruiter, error) {
	db := s.rm.Conn()
	v, err := s.rm.Verifications(db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &models.VerificationWithRecruiter{CompanyVerification: v}
	rec, err := s.rm.Recruiters(db).GetByID(ctx, v.RecruiterID)
	switch {
	case err == nil:
		out.Recruiter = rec
	case !errors.Is(err, common.ErrPrincipalNotFound):
		return nil, err
	}
	return out, nil
}

// RecruiterDocuments lists the recruiter's submitted documents with the URL
// they are served under.
func (s *VerificationService) RecruiterDocuments(ctx context.Context, recruiterID string) (*models.RecruiterDocuments, error) {
	db := s.rm.Conn()
	rec, err := s.rm.Recruiters(db).GetByID(ctx, recruiterID)
	if errors.Is(err, common.ErrPrincipalNotFound) {
		return nil, fmt.Errorf("%w: recruiter not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	out := &models.RecruiterDocuments{RecruiterID: rec.ID, CompanyName: rec.CompanyName, Documents: []models.Document{}}
	v, err := s.rm.Verifications(db).GetByRecruiter(ctx, recruiterID)
	if errors.Is(err, common.ErrVerificationNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	for _, d := range v.Documents {
		d.URL = d.Path
		out.Documents = append(out.Documents, d)
	}
	return out, nil
}
