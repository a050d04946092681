package memory

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type VerificationRepository struct{ s *Store }

func NewVerificationRepository(s *Store) *VerificationRepository {
	return &VerificationRepository{s: s}
}

func (r *VerificationRepository) Create(ctx context.Context, v *models.CompanyVerification) error {
	defer r.s.write(ctx)()
	if len(r.s.st.verifications.filter(func(x models.CompanyVerification) bool { return x.RecruiterID == v.RecruiterID })) > 0 {
		return common.Validationf("verification already exists for recruiter")
	}
	r.s.st.verifications.put(v.ID, *v, r.s.next())
	return nil
}

func (r *VerificationRepository) GetByID(_ context.Context, id string) (*models.CompanyVerification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.st.verifications.get(id)
	if !ok {
		return nil, common.ErrVerificationNotFound
	}
	return &v, nil
}

func (r *VerificationRepository) GetByRecruiter(_ context.Context, recruiterID string) (*models.CompanyVerification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	found := r.s.st.verifications.filter(func(v models.CompanyVerification) bool { return v.RecruiterID == recruiterID })
	if len(found) == 0 {
		return nil, common.ErrVerificationNotFound
	}
	return &found[0], nil
}

func (r *VerificationRepository) Update(ctx context.Context, v *models.CompanyVerification) error {
	defer r.s.write(ctx)()
	cur, ok := r.s.st.verifications.get(v.ID)
	if !ok {
		return common.ErrVerificationNotFound
	}
	next := *v
	next.RecruiterID = cur.RecruiterID
	next.CreatedAt = cur.CreatedAt
	r.s.st.verifications.put(v.ID, next, 0)
	return nil
}

func (r *VerificationRepository) List(_ context.Context, status models.VerificationStatus) ([]*models.CompanyVerification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.s.st.verifications.filter(func(v models.CompanyVerification) bool {
		return status == "" || v.Status == status
	})
	slices.SortStableFunc(rows, byCreatedDesc(func(v models.CompanyVerification) time.Time { return v.CreatedAt }))
	out := make([]*models.CompanyVerification, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *VerificationRepository) DeleteByRecruiter(ctx context.Context, recruiterID string) error {
	defer r.s.write(ctx)()
	for _, v := range r.s.st.verifications.filter(func(v models.CompanyVerification) bool { return v.RecruiterID == recruiterID }) {
		r.s.st.verifications.del(v.ID)
	}
	return nil
}

func (r *VerificationRepository) CountByStatus(_ context.Context, status models.VerificationStatus) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.st.verifications.filter(func(v models.CompanyVerification) bool { return v.Status == status })), nil
}
