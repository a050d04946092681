package models

import "time"

// VerificationStatus is the review state of a company verification record.
// Approved corresponds to RecruiterVerified on the recruiter.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// RecruiterStatus returns the mirrored recruiter status.
func (s VerificationStatus) RecruiterStatus() RecruiterStatus {
	switch s {
	case VerificationApproved:
		return RecruiterVerified
	case VerificationRejected:
		return RecruiterRejected
	}
	return RecruiterPending
}

const DefaultRejectionReason = "Documents did not meet requirements"

type Document struct {
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploadedAt"`
	URL        string    `json:"url,omitempty"`
}

type CompanyVerification struct {
	ID              string             `json:"id"`
	RecruiterID     string             `json:"recruiter"`
	Documents       []Document         `json:"documents"`
	Status          VerificationStatus `json:"status"`
	ReviewedBy      string             `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time         `json:"reviewedAt,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// VerificationWithRecruiter is the admin view of a verification record.
type VerificationWithRecruiter struct {
	*CompanyVerification
	Recruiter *Recruiter `json:"recruiterInfo,omitempty"`
}

// RecruiterDocuments lists the documents a recruiter submitted for review.
type RecruiterDocuments struct {
	RecruiterID string     `json:"recruiterId"`
	CompanyName string     `json:"companyName"`
	Documents   []Document `json:"documents"`
}
