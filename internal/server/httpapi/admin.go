package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/gin-gonic/gin"
)

type adminProfileRequest struct {
	Email           *string `json:"email" binding:"omitempty,email"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

type activeRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type rejectRequest struct {
	RejectionReason string `json:"rejectionReason"`
}

type adminSeekerRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

type adminRecruiterRequest struct {
	FullName           *string                 `json:"fullName"`
	CompanyName        *string                 `json:"companyName"`
	Phone              *string                 `json:"phone"`
	IsActive           *bool                   `json:"isActive"`
	VerificationStatus *models.RecruiterStatus `json:"verificationStatus"`
}

func activeWord(active bool) string {
	if active {
		return "activated"
	}
	return "deactivated"
}

func (s *HTTPServer) adminProfile(c *gin.Context) {
	a, err := s.svc.Admin.Profile(c.Request.Context(), principal(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *HTTPServer) updateAdminProfile(c *gin.Context) {
	var req adminProfileRequest
	if !bind(c, &req) {
		return
	}
	a, err := s.svc.Admin.UpdateProfile(c.Request.Context(), principal(c).ID, services.AdminProfileUpdate{
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "admin": a})
}

func (s *HTTPServer) dashboardStats(c *gin.Context) {
	st, err := s.svc.Admin.Stats(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *HTTPServer) adminListSeekers(c *gin.Context) {
	list, err := s.svc.Admin.JobSeekers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) adminListRecruiters(c *gin.Context) {
	list, err := s.svc.Admin.Recruiters(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) adminListJobs(c *gin.Context) {
	list, err := s.svc.Jobs.ListAll(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) adminListApplications(c *gin.Context) {
	list, err := s.svc.Applications.ListAll(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) listVerifications(c *gin.Context, status models.VerificationStatus) {
	list, err := s.svc.Verifications.List(c.Request.Context(), status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) pendingVerifications(c *gin.Context) {
	s.listVerifications(c, models.VerificationPending)
}

func (s *HTTPServer) allVerifications(c *gin.Context) {
	s.listVerifications(c, "")
}

func (s *HTTPServer) getVerification(c *gin.Context) {
	v, err := s.svc.Verifications.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *HTTPServer) recruiterDocuments(c *gin.Context) {
	docs, err := s.svc.Verifications.RecruiterDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (s *HTTPServer) approveCompany(c *gin.Context) {
	v, err := s.svc.Verifications.Approve(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company approved successfully", "verification": v})
}

func (s *HTTPServer) rejectCompany(c *gin.Context) {
	var req rejectRequest
	_ = c.ShouldBindJSON(&req)
	v, err := s.svc.Verifications.Reject(c.Request.Context(), principal(c), c.Param("id"), req.RejectionReason)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company rejected successfully", "verification": v})
}

func (s *HTTPServer) setSeekerStatus(c *gin.Context) {
	var req activeRequest
	if !bind(c, &req) {
		return
	}
	js, err := s.svc.Admin.SetJobSeekerActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User " + activeWord(*req.IsActive) + " successfully", "user": js})
}

func (s *HTTPServer) adminUpdateSeeker(c *gin.Context) {
	var req adminSeekerRequest
	if !bind(c, &req) {
		return
	}
	js, err := s.svc.Admin.UpdateJobSeeker(c.Request.Context(), c.Param("id"), services.AdminSeekerUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": js})
}

func (s *HTTPServer) adminDeleteSeeker(c *gin.Context) {
	if err := s.svc.Admin.DeleteJobSeeker(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	message(c, "User deleted successfully")
}

func (s *HTTPServer) setRecruiterStatus(c *gin.Context) {
	var req activeRequest
	if !bind(c, &req) {
		return
	}
	rec, err := s.svc.Admin.SetRecruiterActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recruiter " + activeWord(*req.IsActive) + " successfully", "recruiter": rec})
}

func (s *HTTPServer) adminUpdateRecruiter(c *gin.Context) {
	var req adminRecruiterRequest
	if !bind(c, &req) {
		return
	}
	rec, err := s.svc.Admin.UpdateRecruiter(c.Request.Context(), c.Param("id"), services.AdminRecruiterUpdate{
		FullName:           req.FullName,
		CompanyName:        req.CompanyName,
		Phone:              req.Phone,
		IsActive:           req.IsActive,
		VerificationStatus: req.VerificationStatus,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recruiter updated successfully", "recruiter": rec})
}

func (s *HTTPServer) adminDeleteRecruiter(c *gin.Context) {
	if err := s.svc.Admin.DeleteRecruiter(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	message(c, "Recruiter deleted successfully")
}

func (s *HTTPServer) adminDeleteJob(c *gin.Context) {
	if err := s.svc.Admin.DeleteJob(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	message(c, "Job deleted successfully")
}
