package models

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationApplicationSubmitted NotificationType = "application_submitted"
	NotificationApplicationAccepted  NotificationType = "application_accepted"
	NotificationApplicationRejected  NotificationType = "application_rejected"
	NotificationCompanyVerified      NotificationType = "company_verified"
	NotificationCompanyRejected      NotificationType = "company_rejected"
)

// RecipientKind discriminates which principal table a recipient id points into.
type RecipientKind string

const (
	RecipientJobSeeker RecipientKind = "jobseeker"
	RecipientRecruiter RecipientKind = "recruiter"
)

func (k RecipientKind) Valid() bool {
	return k == RecipientJobSeeker || k == RecipientRecruiter
}

type Recipient struct {
	Kind RecipientKind `json:"kind"`
	ID   string        `json:"id"`
}

type Notification struct {
	ID                 string           `json:"id"`
	Recipient          Recipient        `json:"recipient"`
	Type               NotificationType `json:"type"`
	Title              string           `json:"title"`
	Message            string           `json:"message"`
	RelatedJob         string           `json:"relatedJob,omitempty"`
	RelatedApplication string           `json:"relatedApplication,omitempty"`
	IsRead             bool             `json:"isRead"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// ApplicationSubmitted addresses the recruiter owning job.
func ApplicationSubmitted(job *Job, app *Application, applicantName string) *Notification {
	return &Notification{
		Recipient:          Recipient{Kind: RecipientRecruiter, ID: job.PostedBy},
		Type:               NotificationApplicationSubmitted,
		Title:              "New Application Received",
		Message:            fmt.Sprintf("%s has applied for the position: %s", applicantName, job.Title),
		RelatedJob:         job.ID,
		RelatedApplication: app.ID,
	}
}

// ApplicationDecided addresses the applicant of an accepted or rejected
// application. It returns nil for other statuses.
func ApplicationDecided(job *Job, app *Application) *Notification {
	n := &Notification{
		Recipient:          Recipient{Kind: RecipientJobSeeker, ID: app.ApplicantID},
		RelatedJob:         job.ID,
		RelatedApplication: app.ID,
	}
	switch app.Status {
	case ApplicationAccepted:
		n.Type = NotificationApplicationAccepted
		n.Title = "Application Accepted"
		n.Message = fmt.Sprintf("Congratulations! Your application for %s has been accepted.", job.Title)
	case ApplicationRejected:
		n.Type = NotificationApplicationRejected
		n.Title = "Application Rejected"
		n.Message = fmt.Sprintf("Your application for %s has been rejected.", job.Title)
	default:
		return nil
	}
	return n
}

func CompanyVerified(r *Recruiter) *Notification {
	return &Notification{
		Recipient: Recipient{Kind: RecipientRecruiter, ID: r.ID},
		Type:      NotificationCompanyVerified,
		Title:     "Company Verified",
		Message:   fmt.Sprintf("Your company %s has been verified. You can now post jobs.", r.CompanyName),
	}
}

func CompanyRejected(r *Recruiter, reason string) *Notification {
	return &Notification{
		Recipient: Recipient{Kind: RecipientRecruiter, ID: r.ID},
		Type:      NotificationCompanyRejected,
		Title:     "Company Verification Rejected",
		Message:   fmt.Sprintf("Your company verification has been rejected. Reason: %s", reason),
	}
}

// RelatedJob is the job title shown next to a notification.
type RelatedJob struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CompanyName string `json:"companyName"`
}

type NotificationWithJob struct {
	*Notification
	Job *RelatedJob `json:"relatedJobInfo,omitempty"`
}
