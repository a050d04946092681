package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	FullName string `json:"fullName" binding:"required,fullname"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpassword"`
	Phone    string `json:"phone" binding:"required,nepalphone"`
}

type registerRecruiterRequest struct {
	registerRequest
	CompanyName string `json:"companyName" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// sessionBody flattens a session into the principal summary plus tokens.
func sessionBody(s *services.Session) gin.H {
	body := gin.H{
		"id":           s.Principal.ID,
		"email":        s.Principal.Email,
		"role":         s.Principal.Role,
		"token":        s.Tokens.AccessToken,
		"refreshToken": s.Tokens.RefreshToken,
	}
	switch {
	case s.JobSeeker != nil:
		body["fullName"] = s.JobSeeker.FullName
		body["skills"] = s.JobSeeker.Skills
		body["resume"] = s.JobSeeker.Resume
	case s.Recruiter != nil:
		body["fullName"] = s.Recruiter.FullName
		body["companyName"] = s.Recruiter.CompanyName
		body["verificationStatus"] = s.Recruiter.VerificationStatus
	}
	return body
}

func (s *HTTPServer) registerJobSeeker(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req) {
		return
	}
	sess, err := s.svc.Auth.RegisterJobSeeker(c.Request.Context(), services.RegisterSeekerInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionBody(sess))
}

func (s *HTTPServer) registerRecruiter(c *gin.Context) {
	var req registerRecruiterRequest
	if !bind(c, &req) {
		return
	}
	sess, err := s.svc.Auth.RegisterRecruiter(c.Request.Context(), services.RegisterRecruiterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionBody(sess))
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	sess, err := s.svc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionBody(sess))
}

func (s *HTTPServer) refresh(c *gin.Context) {
	var req refreshRequest
	if !bind(c, &req) {
		return
	}
	pair, err := s.svc.Auth.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": pair.AccessToken, "refreshToken": pair.RefreshToken})
}

// logout revokes the refresh token when the body carries one.
func (s *HTTPServer) logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = c.ShouldBindJSON(&req)
	if err := s.svc.Auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		s.fail(c, err)
		return
	}
	message(c, "Logged out successfully")
}

func (s *HTTPServer) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if !bind(c, &req) {
		return
	}
	err := s.svc.Auth.ChangePassword(c.Request.Context(), principal(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		s.fail(c, err)
		return
	}
	message(c, "Password changed successfully")
}
