package memory

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type JobRepository struct{ s *Store }

func NewJobRepository(s *Store) *JobRepository { return &JobRepository{s: s} }

func jobCreated(j models.Job) time.Time { return j.CreatedAt }

func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	defer r.s.write(ctx)()
	if j.ApplicationIDs == nil {
		j.ApplicationIDs = []string{}
	}
	r.s.st.jobs.put(j.ID, *j, r.s.next())
	return nil
}

func (r *JobRepository) GetByID(_ context.Context, id string) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.st.jobs.get(id)
	if !ok {
		return nil, common.ErrJobNotFound
	}
	return &j, nil
}

func (r *JobRepository) GetByIDs(_ context.Context, ids []string) ([]*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(j models.Job) bool { return slices.Contains(ids, j.ID) }, 0), nil
}

func (r *JobRepository) list(keep func(models.Job) bool, limit int) []*models.Job {
	rows := r.s.st.jobs.filter(keep)
	slices.SortStableFunc(rows, byCreatedDesc(jobCreated))
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]*models.Job, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}

// Update leaves the application back-references untouched.
func (r *JobRepository) Update(ctx context.Context, j *models.Job) error {
	defer r.s.write(ctx)()
	cur, ok := r.s.st.jobs.get(j.ID)
	if !ok {
		return common.ErrJobNotFound
	}
	next := *j
	next.ApplicationIDs = cur.ApplicationIDs
	next.PostedBy = cur.PostedBy
	next.CreatedAt = cur.CreatedAt
	r.s.st.jobs.put(j.ID, next, 0)
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx)()
	if !r.s.st.jobs.del(id) {
		return common.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) List(_ context.Context, f models.JobFilter) ([]*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(j models.Job) bool { return f.Matches(&j) }, f.Limit), nil
}

func (r *JobRepository) ListExpired(_ context.Context, now time.Time, limit int) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.s.st.jobs.filter(func(j models.Job) bool { return j.Expired(now) })
	slices.SortStableFunc(rows, func(a, b models.Job) int { return a.Deadline.Compare(b.Deadline) })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	ids := make([]string, len(rows))
	for i, j := range rows {
		ids[i] = j.ID
	}
	return ids, nil
}

func (r *JobRepository) ListIDsByRecruiter(_ context.Context, recruiterID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for _, j := range r.s.st.jobs.filter(func(j models.Job) bool { return j.PostedBy == recruiterID }) {
		ids = append(ids, j.ID)
	}
	return ids, nil
}

func (r *JobRepository) AddApplication(ctx context.Context, jobID, applicationID string) error {
	defer r.s.write(ctx)()
	j, ok := r.s.st.jobs.get(jobID)
	if !ok {
		return common.ErrJobNotFound
	}
	j.ApplicationIDs = append(j.ApplicationIDs, applicationID)
	r.s.st.jobs.put(jobID, j, 0)
	return nil
}

func (r *JobRepository) RemoveApplication(ctx context.Context, jobID, applicationID string) error {
	defer r.s.write(ctx)()
	j, ok := r.s.st.jobs.get(jobID)
	if !ok {
		return nil
	}
	j.ApplicationIDs = slices.DeleteFunc(j.ApplicationIDs, func(id string) bool { return id == applicationID })
	r.s.st.jobs.put(jobID, j, 0)
	return nil
}

func (r *JobRepository) Count(_ context.Context, activeOnly bool) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.st.jobs.filter(func(j models.Job) bool { return !activeOnly || j.IsActive })), nil
}
