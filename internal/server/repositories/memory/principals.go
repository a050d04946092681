package memory

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type AdminRepository struct{ s *Store }

func NewAdminRepository(s *Store) *AdminRepository { return &AdminRepository{s: s} }

func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	defer r.s.write(ctx)()
	if len(r.s.st.admins.filter(func(v models.Admin) bool { return v.Email == a.Email })) > 0 {
		return common.ErrEmailTaken
	}
	r.s.st.admins.put(a.ID, *a, r.s.next())
	return nil
}

func (r *AdminRepository) GetByID(_ context.Context, id string) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.admins.get(id)
	if !ok {
		return nil, common.ErrPrincipalNotFound
	}
	return &a, nil
}

func (r *AdminRepository) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	found := r.s.st.admins.filter(func(v models.Admin) bool { return v.Email == email })
	if len(found) == 0 {
		return nil, common.ErrPrincipalNotFound
	}
	return &found[0], nil
}

func (r *AdminRepository) Update(ctx context.Context, a *models.Admin) error {
	defer r.s.write(ctx)()
	if _, ok := r.s.st.admins.get(a.ID); !ok {
		return common.ErrPrincipalNotFound
	}
	r.s.st.admins.put(a.ID, *a, 0)
	return nil
}

type SeekerRepository struct{ s *Store }

func NewSeekerRepository(s *Store) *SeekerRepository { return &SeekerRepository{s: s} }

func (r *SeekerRepository) emailTaken(email, exceptID string) bool {
	return len(r.s.st.seekers.filter(func(v models.JobSeeker) bool {
		return v.Email == email && v.ID != exceptID
	})) > 0
}

// withSaved fills SavedJobs from the saved-jobs table, oldest first.
func (r *SeekerRepository) withSaved(s models.JobSeeker) *models.JobSeeker {
	saved := r.s.st.saved.filter(func(v savedJob) bool { return v.seekerID == s.ID })
	slices.Reverse(saved)
	s.SavedJobs = make([]string, 0, len(saved))
	for _, sj := range saved {
		s.SavedJobs = append(s.SavedJobs, sj.jobID)
	}
	return &s
}

func (r *SeekerRepository) Create(ctx context.Context, s *models.JobSeeker) error {
	defer r.s.write(ctx)()
	if r.emailTaken(s.Email, "") {
		return common.ErrEmailTaken
	}
	r.s.st.seekers.put(s.ID, *s, r.s.next())
	return nil
}

func (r *SeekerRepository) GetByID(_ context.Context, id string) (*models.JobSeeker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.st.seekers.get(id)
	if !ok {
		return nil, common.ErrPrincipalNotFound
	}
	return r.withSaved(s), nil
}

func (r *SeekerRepository) GetByEmail(_ context.Context, email string) (*models.JobSeeker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	found := r.s.st.seekers.filter(func(v models.JobSeeker) bool { return v.Email == email })
	if len(found) == 0 {
		return nil, common.ErrPrincipalNotFound
	}
	return r.withSaved(found[0]), nil
}

func (r *SeekerRepository) GetByIDs(_ context.Context, ids []string) ([]*models.JobSeeker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(v models.JobSeeker) bool { return slices.Contains(ids, v.ID) }), nil
}

func (r *SeekerRepository) List(_ context.Context) ([]*models.JobSeeker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(nil), nil
}

func (r *SeekerRepository) list(keep func(models.JobSeeker) bool) []*models.JobSeeker {
	rows := r.s.st.seekers.filter(keep)
	slices.SortStableFunc(rows, byCreatedDesc(func(v models.JobSeeker) time.Time { return v.CreatedAt }))
	out := make([]*models.JobSeeker, 0, len(rows))
	for _, v := range rows {
		out = append(out, r.withSaved(v))
	}
	return out
}

func (r *SeekerRepository) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.st.seekers.rows), nil
}

func (r *SeekerRepository) Update(ctx context.Context, s *models.JobSeeker) error {
	defer r.s.write(ctx)()
	if _, ok := r.s.st.seekers.get(s.ID); !ok {
		return common.ErrPrincipalNotFound
	}
	if r.emailTaken(s.Email, s.ID) {
		return common.ErrEmailTaken
	}
	r.s.st.seekers.put(s.ID, *s, 0)
	return nil
}

func (r *SeekerRepository) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx)()
	if !r.s.st.seekers.del(id) {
		return common.ErrPrincipalNotFound
	}
	return nil
}

func savedKey(seekerID, jobID string) string { return seekerID + "/" + jobID }

func (r *SeekerRepository) SaveJob(ctx context.Context, seekerID, jobID string, at time.Time) error {
	defer r.s.write(ctx)()
	key := savedKey(seekerID, jobID)
	if _, ok := r.s.st.saved.get(key); ok {
		return common.ErrJobAlreadySaved
	}
	r.s.st.saved.put(key, savedJob{seekerID: seekerID, jobID: jobID, at: at}, r.s.next())
	return nil
}

func (r *SeekerRepository) UnsaveJob(ctx context.Context, seekerID, jobID string) error {
	defer r.s.write(ctx)()
	r.s.st.saved.del(savedKey(seekerID, jobID))
	return nil
}

func (r *SeekerRepository) DeleteSavedBySeeker(ctx context.Context, seekerID string) error {
	defer r.s.write(ctx)()
	for _, sj := range r.s.st.saved.filter(func(v savedJob) bool { return v.seekerID == seekerID }) {
		r.s.st.saved.del(savedKey(sj.seekerID, sj.jobID))
	}
	return nil
}

func (r *SeekerRepository) DeleteSavedByJobs(ctx context.Context, jobIDs []string) error {
	defer r.s.write(ctx)()
	for _, sj := range r.s.st.saved.filter(func(v savedJob) bool { return slices.Contains(jobIDs, v.jobID) }) {
		r.s.st.saved.del(savedKey(sj.seekerID, sj.jobID))
	}
	return nil
}

type RecruiterRepository struct{ s *Store }

func NewRecruiterRepository(s *Store) *RecruiterRepository { return &RecruiterRepository{s: s} }

func (r *RecruiterRepository) emailTaken(email, exceptID string) bool {
	return len(r.s.st.recruiters.filter(func(v models.Recruiter) bool {
		return v.Email == email && v.ID != exceptID
	})) > 0
}

func (r *RecruiterRepository) Create(ctx context.Context, rc *models.Recruiter) error {
	defer r.s.write(ctx)()
	if r.emailTaken(rc.Email, "") {
		return common.ErrEmailTaken
	}
	r.s.st.recruiters.put(rc.ID, *rc, r.s.next())
	return nil
}

func (r *RecruiterRepository) GetByID(_ context.Context, id string) (*models.Recruiter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rc, ok := r.s.st.recruiters.get(id)
	if !ok {
		return nil, common.ErrPrincipalNotFound
	}
	return &rc, nil
}

func (r *RecruiterRepository) GetByEmail(_ context.Context, email string) (*models.Recruiter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	found := r.s.st.recruiters.filter(func(v models.Recruiter) bool { return v.Email == email })
	if len(found) == 0 {
		return nil, common.ErrPrincipalNotFound
	}
	return &found[0], nil
}

func (r *RecruiterRepository) GetByIDs(_ context.Context, ids []string) ([]*models.Recruiter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(v models.Recruiter) bool { return slices.Contains(ids, v.ID) }), nil
}

func (r *RecruiterRepository) List(_ context.Context) ([]*models.Recruiter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(nil), nil
}

func (r *RecruiterRepository) list(keep func(models.Recruiter) bool) []*models.Recruiter {
	rows := r.s.st.recruiters.filter(keep)
	slices.SortStableFunc(rows, byCreatedDesc(func(v models.Recruiter) time.Time { return v.CreatedAt }))
	out := make([]*models.Recruiter, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}

func (r *RecruiterRepository) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.st.recruiters.rows), nil
}

func (r *RecruiterRepository) Update(ctx context.Context, rc *models.Recruiter) error {
	defer r.s.write(ctx)()
	if _, ok := r.s.st.recruiters.get(rc.ID); !ok {
		return common.ErrPrincipalNotFound
	}
	if r.emailTaken(rc.Email, rc.ID) {
		return common.ErrEmailTaken
	}
	r.s.st.recruiters.put(rc.ID, *rc, 0)
	return nil
}

func (r *RecruiterRepository) SetVerificationStatus(ctx context.Context, id string, status models.RecruiterStatus, at time.Time) error {
	defer r.s.write(ctx)()
	rc, ok := r.s.st.recruiters.get(id)
	if !ok {
		return common.ErrPrincipalNotFound
	}
	rc.VerificationStatus = status
	rc.UpdatedAt = at
	r.s.st.recruiters.put(id, rc, 0)
	return nil
}

func (r *RecruiterRepository) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx)()
	if !r.s.st.recruiters.del(id) {
		return common.ErrPrincipalNotFound
	}
	return nil
}
