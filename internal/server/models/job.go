package models

import "time"

type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "0-1 years"
	ExperienceJunior ExperienceLevel = "1-3 years"
	ExperienceMid    ExperienceLevel = "3-5 years"
	ExperienceSenior ExperienceLevel = "5+ years"
	ExperienceAny    ExperienceLevel = "Any"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceEntry, ExperienceJunior, ExperienceMid, ExperienceSenior, ExperienceAny:
		return true
	}
	return false
}

type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeInternship JobType = "Internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship:
		return true
	}
	return false
}

type Category string

const (
	CategoryIT           Category = "IT"
	CategoryFinance      Category = "Finance"
	CategoryBanking      Category = "Banking"
	CategorySales        Category = "Sales"
	CategoryMarketing    Category = "Marketing"
	CategoryConstruction Category = "Construction"
	CategoryHealthcare   Category = "Healthcare"
	CategoryEducation    Category = "Education"
	CategoryOther        Category = "Other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryIT, CategoryFinance, CategoryBanking, CategorySales, CategoryMarketing,
		CategoryConstruction, CategoryHealthcare, CategoryEducation, CategoryOther:
		return true
	}
	return false
}

type Salary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Valid reports whether the range is ordered.
func (s Salary) Valid() bool { return s.Min <= s.Max }

type Job struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	SkillsRequired []string        `json:"skillsRequired"`
	Salary         Salary          `json:"salaryRange"`
	Experience     ExperienceLevel `json:"experienceRequired"`
	JobType        JobType         `json:"jobType"`
	Location       string          `json:"location"`
	Category       Category        `json:"category"`
	CompanyName    string          `json:"companyName"`
	Deadline       time.Time       `json:"deadline"`
	PostedBy       string          `json:"postedBy"`
	IsActive       bool            `json:"isActive"`
	ApplicationIDs []string        `json:"applications"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Expired reports whether the deadline is strictly before now.
func (j *Job) Expired(now time.Time) bool { return j.Deadline.Before(now) }

// SharesSkill reports whether any required skill is in skills.
func (j *Job) SharesSkill(skills []string) bool {
	for _, want := range j.SkillsRequired {
		for _, have := range skills {
			if want == have {
				return true
			}
		}
	}
	return false
}

// JobDraft is the recruiter-supplied content of a new posting.
type JobDraft struct {
	Title          string
	Description    string
	SkillsRequired []string
	Salary         Salary
	Experience     ExperienceLevel
	JobType        JobType
	Location       string
	Category       Category
	Deadline       time.Time
	IsActive       *bool
}

// JobPatch carries the fields of an update; nil means unchanged.
type JobPatch struct {
	Title          *string
	Description    *string
	SkillsRequired []string
	SalaryMin      *float64
	SalaryMax      *float64
	Experience     *ExperienceLevel
	JobType        *JobType
	Location       *string
	Category       *Category
	Deadline       *time.Time
	IsActive       *bool
}

// Apply copies the set fields onto job.
func (p JobPatch) Apply(job *Job) {
	if p.Title != nil {
		job.Title = *p.Title
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.SkillsRequired != nil {
		job.SkillsRequired = p.SkillsRequired
	}
	if p.SalaryMin != nil {
		job.Salary.Min = *p.SalaryMin
	}
	if p.SalaryMax != nil {
		job.Salary.Max = *p.SalaryMax
	}
	if p.Experience != nil {
		job.Experience = *p.Experience
	}
	if p.JobType != nil {
		job.JobType = *p.JobType
	}
	if p.Location != nil {
		job.Location = *p.Location
	}
	if p.Category != nil {
		job.Category = *p.Category
	}
	if p.Deadline != nil {
		job.Deadline = *p.Deadline
	}
	if p.IsActive != nil {
		job.IsActive = *p.IsActive
	}
}

// JobFilter selects jobs for listing and search.
//
// MinSalary keeps jobs whose salary minimum is at least the bound, MaxSalary
// keeps jobs whose salary maximum is at most the bound. Skills matches jobs
// requiring any of the given skills. Search is a case-insensitive substring
// match on title, description or company name.
type JobFilter struct {
	Category        Category
	Experience      ExperienceLevel
	JobType         JobType
	Location        string
	MinSalary       *float64
	MaxSalary       *float64
	Skills          []string
	Search          string
	PostedBy        string
	IncludeInactive bool
	// NotExpiredAt drops jobs whose deadline passed before it; zero keeps all.
	NotExpiredAt time.Time
	Limit        int
}

// Matches evaluates the filter in memory, mirroring the SQL translation.
func (f JobFilter) Matches(j *Job) bool {
	if !f.IncludeInactive && !j.IsActive {
		return false
	}
	if !f.NotExpiredAt.IsZero() && j.Expired(f.NotExpiredAt) {
		return false
	}
	if f.PostedBy != "" && j.PostedBy != f.PostedBy {
		return false
	}
	if f.Category != "" && j.Category != f.Category {
		return false
	}
	if f.Experience != "" && j.Experience != f.Experience {
		return false
	}
	if f.JobType != "" && j.JobType != f.JobType {
		return false
	}
	if f.Location != "" && !containsFold(j.Location, f.Location) {
		return false
	}
	if f.MinSalary != nil && j.Salary.Min < *f.MinSalary {
		return false
	}
	if f.MaxSalary != nil && j.Salary.Max > *f.MaxSalary {
		return false
	}
	if len(f.Skills) > 0 && !j.SharesSkill(f.Skills) {
		return false
	}
	if f.Search != "" &&
		!containsFold(j.Title, f.Search) &&
		!containsFold(j.Description, f.Search) &&
		!containsFold(j.CompanyName, f.Search) {
		return false
	}
	return true
}

// JobWithCompany is a job together with its poster's public profile.
type JobWithCompany struct {
	*Job
	Company *CompanyProfile `json:"company,omitempty"`
}

// RecruiterJob is a recruiter's own job with its application count.
type RecruiterJob struct {
	*Job
	ApplicationCount int `json:"applicationCount"`
}
