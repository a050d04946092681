package memory

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type ApplicationRepository struct{ s *Store }

func NewApplicationRepository(s *Store) *ApplicationRepository {
	return &ApplicationRepository{s: s}
}

func (r *ApplicationRepository) exists(jobID, applicantID string) bool {
	return len(r.s.st.applications.filter(func(a models.Application) bool {
		return a.JobID == jobID && a.ApplicantID == applicantID
	})) > 0
}

func (r *ApplicationRepository) Create(ctx context.Context, a *models.Application) error {
	defer r.s.write(ctx)()
	if r.exists(a.JobID, a.ApplicantID) {
		return common.ErrDuplicateApplication
	}
	r.s.st.applications.put(a.ID, *a, r.s.next())
	return nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id string) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.applications.get(id)
	if !ok {
		return nil, common.ErrApplicationNotFound
	}
	return &a, nil
}

func (r *ApplicationRepository) Exists(_ context.Context, jobID, applicantID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.exists(jobID, applicantID), nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string, at time.Time) error {
	defer r.s.write(ctx)()
	a, ok := r.s.st.applications.get(id)
	if !ok {
		return common.ErrApplicationNotFound
	}
	a.Status = status
	if notes != nil {
		a.Notes = *notes
	}
	a.UpdatedAt = at
	r.s.st.applications.put(id, a, 0)
	return nil
}

func (r *ApplicationRepository) list(keep func(models.Application) bool) []*models.Application {
	rows := r.s.st.applications.filter(keep)
	slices.SortStableFunc(rows, byCreatedDesc(func(a models.Application) time.Time { return a.AppliedAt }))
	out := make([]*models.Application, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}

func (r *ApplicationRepository) ListByJob(_ context.Context, jobID string) ([]*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(a models.Application) bool { return a.JobID == jobID }), nil
}

func (r *ApplicationRepository) ListByApplicant(_ context.Context, applicantID string) ([]*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(a models.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *ApplicationRepository) ListAll(_ context.Context) ([]*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(nil), nil
}

func (r *ApplicationRepository) DeleteByJobs(ctx context.Context, jobIDs []string) (int64, error) {
	defer r.s.write(ctx)()
	var n int64
	for _, a := range r.list(func(a models.Application) bool { return slices.Contains(jobIDs, a.JobID) }) {
		r.s.st.applications.del(a.ID)
		n++
	}
	return n, nil
}

func (r *ApplicationRepository) DeleteByApplicant(ctx context.Context, applicantID string) ([]*models.Application, error) {
	defer r.s.write(ctx)()
	removed := r.list(func(a models.Application) bool { return a.ApplicantID == applicantID })
	for _, a := range removed {
		r.s.st.applications.del(a.ID)
	}
	return removed, nil
}

func (r *ApplicationRepository) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.st.applications.rows), nil
}
