package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationShortlisted, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Final reports whether the status is a decision the applicant is told about.
func (s ApplicationStatus) Final() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// CanMoveTo reports whether the forward-only lifecycle
// pending -> shortlisted -> {accepted, rejected} allows s -> next.
// Re-setting the current status is always allowed.
func (s ApplicationStatus) CanMoveTo(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ApplicationPending:
		return next == ApplicationShortlisted
	case ApplicationShortlisted:
		return next.Final()
	}
	return false
}

type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job"`
	ApplicantID string            `json:"applicant"`
	Resume      string            `json:"resume"`
	Status      ApplicationStatus `json:"status"`
	Notes       string            `json:"notes"`
	AppliedAt   time.Time         `json:"appliedAt"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ApplicantSummary is the applicant data a recruiter sees on an application.
type ApplicantSummary struct {
	ID         string   `json:"id"`
	FullName   string   `json:"fullName"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Resume     string   `json:"resume"`
}

func (s *JobSeeker) Summary() ApplicantSummary {
	return ApplicantSummary{
		ID:         s.ID,
		FullName:   s.FullName,
		Email:      s.Email,
		Phone:      s.Phone,
		Skills:     s.Skills,
		Experience: s.Experience,
		Resume:     s.Resume,
	}
}

// JobSummary is the job data an applicant sees on their applications.
type JobSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"companyName"`
	Location    string    `json:"location"`
	JobType     JobType   `json:"jobType"`
	Category    Category  `json:"category"`
	Salary      Salary    `json:"salaryRange"`
	Deadline    time.Time `json:"deadline"`
	IsActive    bool      `json:"isActive"`
}

func (j *Job) Summary() JobSummary {
	return JobSummary{
		ID:          j.ID,
		Title:       j.Title,
		CompanyName: j.CompanyName,
		Location:    j.Location,
		JobType:     j.JobType,
		Category:    j.Category,
		Salary:      j.Salary,
		Deadline:    j.Deadline,
		IsActive:    j.IsActive,
	}
}

type ApplicationWithApplicant struct {
	*Application
	Applicant ApplicantSummary `json:"applicantInfo"`
}

type ApplicationWithJob struct {
	*Application
	Job JobSummary `json:"jobInfo"`
}

// ApplicationOverview is the admin view of an application: both sides are
// attached when they still exist.
type ApplicationOverview struct {
	*Application
	Job       *JobSummary       `json:"jobInfo,omitempty"`
	Applicant *ApplicantSummary `json:"applicantInfo,omitempty"`
}
