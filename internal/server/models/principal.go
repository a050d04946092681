// Package models defines the domain types persisted by the repositories and
// returned by the services.
package models

import "time"

// Role tags every principal and is baked into issued tokens.
type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// RecruiterStatus is the verification state mirrored on the recruiter.
type RecruiterStatus string

const (
	RecruiterPending  RecruiterStatus = "pending"
	RecruiterVerified RecruiterStatus = "verified"
	RecruiterRejected RecruiterStatus = "rejected"
)

func (s RecruiterStatus) Valid() bool {
	switch s {
	case RecruiterPending, RecruiterVerified, RecruiterRejected:
		return true
	}
	return false
}

type JobSeeker struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Skills       []string  `json:"skills"`
	Experience   string    `json:"experience"`
	ProfilePhoto string    `json:"profilePhoto"`
	Resume       string    `json:"resume"`
	SavedJobs    []string  `json:"savedJobs"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (s *JobSeeker) Principal() Principal {
	return Principal{ID: s.ID, Role: RoleJobSeeker, Email: s.Email, FullName: s.FullName, IsActive: s.IsActive}
}

// HasSkill reports whether skill is one of the seeker's skills.
func (s *JobSeeker) HasSkill(skill string) bool {
	for _, v := range s.Skills {
		if v == skill {
			return true
		}
	}
	return false
}

type Recruiter struct {
	ID                 string          `json:"id"`
	FullName           string          `json:"fullName"`
	Email              string          `json:"email"`
	PasswordHash       string          `json:"-"`
	Phone              string          `json:"phone"`
	CompanyName        string          `json:"companyName"`
	CompanyDescription string          `json:"companyDescription"`
	CompanyAddress     string          `json:"companyAddress"`
	CompanyWebsite     string          `json:"companyWebsite"`
	VerificationStatus RecruiterStatus `json:"verificationStatus"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func (r *Recruiter) Principal() Principal {
	return Principal{ID: r.ID, Role: RoleRecruiter, Email: r.Email, FullName: r.FullName, IsActive: r.IsActive}
}

// CompanyProfile is the public view of a recruiter shown next to a job.
type CompanyProfile struct {
	ID                 string          `json:"id"`
	CompanyName        string          `json:"companyName"`
	CompanyDescription string          `json:"companyDescription"`
	CompanyAddress     string          `json:"companyAddress"`
	CompanyWebsite     string          `json:"companyWebsite"`
	VerificationStatus RecruiterStatus `json:"verificationStatus"`
}

func (r *Recruiter) CompanyProfile() CompanyProfile {
	return CompanyProfile{
		ID:                 r.ID,
		CompanyName:        r.CompanyName,
		CompanyDescription: r.CompanyDescription,
		CompanyAddress:     r.CompanyAddress,
		CompanyWebsite:     r.CompanyWebsite,
		VerificationStatus: r.VerificationStatus,
	}
}

type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (a *Admin) Principal() Principal {
	return Principal{ID: a.ID, Role: RoleAdmin, Email: a.Email, IsActive: a.IsActive}
}

// Principal is the authenticated actor resolved from an access token.
type Principal struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	IsActive bool   `json:"isActive"`
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Recipient returns the notification address of the principal. Admins
// receive no notifications.
func (p Principal) Recipient() (Recipient, bool) {
	switch p.Role {
	case RoleJobSeeker:
		return Recipient{Kind: RecipientJobSeeker, ID: p.ID}, true
	case RoleRecruiter:
		return Recipient{Kind: RecipientRecruiter, ID: p.ID}, true
	}
	return Recipient{}, false
}
