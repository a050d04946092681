package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
)

var (
	phonePattern    = regexp.MustCompile(`^(98|97)[0-9]{8}$`)
	fullNamePattern = regexp.MustCompile(`^[A-Za-z\s]{3,}$`)

	ErrInvalidPhone = common.Validationf("invalid phone number format")
)

// ValidPhone reports whether phone is a ten digit mobile number starting
// with 98 or 97.
func ValidPhone(phone string) bool { return phonePattern.MatchString(phone) }

// ValidFullName reports whether name has at least three letters or spaces
// and nothing else.
func ValidFullName(name string) bool { return fullNamePattern.MatchString(name) }

// SeekerUpdate carries profile changes; nil and empty fields are left as they are.
type SeekerUpdate struct {
	FullName   *string
	Skills     []string
	Experience *string
	Phone      *string
	Resume     *storage.Upload
	Photo      *storage.Upload
}

type RecruiterUpdate struct {
	FullName           *string
	CompanyName        *string
	CompanyDescription *string
	CompanyAddress     *string
	CompanyWebsite     *string
	Phone              *string
}

// ProfileService manages the caller's own job seeker or recruiter profile.
type ProfileService struct {
	*env
}

func (s *ProfileService) JobSeeker(ctx context.Context, id string) (*models.JobSeeker, error) {
	return s.rm.JobSeekers(s.rm.Conn()).GetByID(ctx, id)
}

// UpdateJobSeeker applies u. New files are stored first; files they replace
// are deleted once the profile row is updated.
func (s *ProfileService) UpdateJobSeeker(ctx context.Context, id string, u SeekerUpdate) (*models.JobSeeker, error) {
	if u.Phone != nil && *u.Phone != "" && !ValidPhone(*u.Phone) {
		return nil, ErrInvalidPhone
	}
	if u.FullName != nil && *u.FullName != "" && !ValidFullName(*u.FullName) {
		return nil, common.Validationf("full name must contain only letters and spaces")
	}
	for kind, up := range map[storage.Kind]*storage.Upload{storage.KindResume: u.Resume, storage.KindPhoto: u.Photo} {
		if up == nil {
			continue
		}
		if _, err := s.files.Validate(kind, *up); err != nil {
			return nil, err
		}
	}

	repo := s.rm.JobSeekers(s.rm.Conn())
	seeker, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var added, replaced []string
	store := func(kind storage.Kind, up *storage.Upload, field *string) error {
		if up == nil {
			return nil
		}
		st, err := s.files.Save(ctx, kind, id, *up)
		if err != nil {
			return err
		}
		added = append(added, st.Path)
		replaced = append(replaced, *field)
		*field = st.Path
		return nil
	}
	if err := store(storage.KindResume, u.Resume, &seeker.Resume); err != nil {
		return nil, err
	}
	if err := store(storage.KindPhoto, u.Photo, &seeker.ProfilePhoto); err != nil {
		s.removeFiles(ctx, added...)
		return nil, err
	}

	if u.FullName != nil && *u.FullName != "" {
		seeker.FullName = strings.TrimSpace(*u.FullName)
	}
	if skills := models.NormalizeSkills(u.Skills); len(skills) > 0 {
		seeker.Skills = skills
	}
	if u.Experience != nil && *u.Experience != "" {
		seeker.Experience = *u.Experience
	}
	if u.Phone != nil && *u.Phone != "" {
		seeker.Phone = *u.Phone
	}
	seeker.UpdatedAt = s.utc()

	if err := repo.Update(ctx, seeker); err != nil {
		s.removeFiles(ctx, added...)
		return nil, err
	}
	s.removeFiles(ctx, s.unreferenced(ctx, id, replaced)...)
	return seeker, nil
}

// unreferenced drops the paths one of the seeker's applications still holds
// as its resume snapshot.
func (s *ProfileService) unreferenced(ctx context.Context, seekerID string, paths []string) []string {
	apps, err := s.rm.Applications(s.rm.Conn()).ListByApplicant(ctx, seekerID)
	if err != nil {
		s.log.Warn(ctx, "error listing applications, keeping replaced files", "seeker", seekerID, "error", err)
		return nil
	}
	inUse := make(map[string]bool, len(apps))
	for _, a := range apps {
		inUse[a.Resume] = true
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !inUse[p] {
			out = append(out, p)
		}
	}
	return out
}

// SaveJob bookmarks jobID for the seeker and returns the saved job ids.
func (s *ProfileService) SaveJob(ctx context.Context, seekerID, jobID string) ([]string, error) {
	db := s.rm.Conn()
	if _, err := s.rm.Jobs(db).GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	if err := s.rm.JobSeekers(db).SaveJob(ctx, seekerID, jobID, s.utc()); err != nil {
		return nil, err
	}
	return s.savedIDs(ctx, db, seekerID)
}

// UnsaveJob removes a bookmark; removing a missing one is not an error.
func (s *ProfileService) UnsaveJob(ctx context.Context, seekerID, jobID string) ([]string, error) {
	db := s.rm.Conn()
	if err := s.rm.JobSeekers(db).UnsaveJob(ctx, seekerID, jobID); err != nil {
		return nil, err
	}
	return s.savedIDs(ctx, db, seekerID)
}

func (s *ProfileService) savedIDs(ctx context.Context, db dbx.DBTX, seekerID string) ([]string, error) {
	seeker, err := s.rm.JobSeekers(db).GetByID(ctx, seekerID)
	if err != nil {
		return nil, err
	}
	if seeker.SavedJobs == nil {
		return []string{}, nil
	}
	return seeker.SavedJobs, nil
}

// SavedJobs returns the seeker's bookmarked jobs in the order they were saved.
func (s *ProfileService) SavedJobs(ctx context.Context, seekerID string) ([]*models.JobWithCompany, error) {
	db := s.rm.Conn()
	ids, err := s.savedIDs(ctx, db, seekerID)
	if err != nil {
		return nil, err
	}
	out := []*models.JobWithCompany{}
	if len(ids) == 0 {
		return out, nil
	}

	jobs, err := s.rm.Jobs(db).GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Job, len(jobs))
	posters := make([]string, 0, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
		posters = append(posters, j.PostedBy)
	}
	recs, err := s.rm.Recruiters(db).GetByIDs(ctx, posters)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]*models.CompanyProfile, len(recs))
	for _, r := range recs {
		p := r.CompanyProfile()
		profiles[r.ID] = &p
	}

	for _, id := range ids {
		if j, ok := byID[id]; ok {
			out = append(out, &models.JobWithCompany{Job: j, Company: profiles[j.PostedBy]})
		}
	}
	return out, nil
}

// DeleteJobSeeker removes the seeker, their applications and their files.
func (s *ProfileService) DeleteJobSeeker(ctx context.Context, id string) error {
	var (
		seeker    *models.JobSeeker
		snapshots []string
	)
	err := s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		seeker, snapshots, err = deleteSeeker(ctx, s.rm, tx, id)
		return err
	})
	if err != nil {
		return err
	}
	s.removeFiles(ctx, seeker.Resume, seeker.ProfilePhoto)
	s.removeFiles(ctx, snapshots...)
	return nil
}

func (s *ProfileService) Recruiter(ctx context.Context, id string) (*models.Recruiter, error) {
	return s.rm.Recruiters(s.rm.Conn()).GetByID(ctx, id)
}

func (s *ProfileService) UpdateRecruiter(ctx context.Context, id string, u RecruiterUpdate) (*models.Recruiter, error) {
	if u.Phone != nil && *u.Phone != "" && !ValidPhone(*u.Phone) {
		return nil, ErrInvalidPhone
	}
	repo := s.rm.Recruiters(s.rm.Conn())
	rec, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&rec.FullName, u.FullName)
	set(&rec.CompanyName, u.CompanyName)
	set(&rec.CompanyDescription, u.CompanyDescription)
	set(&rec.CompanyAddress, u.CompanyAddress)
	set(&rec.CompanyWebsite, u.CompanyWebsite)
	set(&rec.Phone, u.Phone)
	rec.UpdatedAt = s.utc()

	if err := repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecruiter removes the recruiter with their jobs, the applications
// and notifications of those jobs, the verification record and its files.
func (s *ProfileService) DeleteRecruiter(ctx context.Context, id string) error {
	var docs []string
	err := s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		docs, err = deleteRecruiter(ctx, s.rm, tx, id)
		return err
	})
	if err != nil {
		return err
	}
	s.removeFiles(ctx, docs...)
	return nil
}
