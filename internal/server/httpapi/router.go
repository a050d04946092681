package httpapi

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) corsConfig() cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.cfg.CORSOrigins) == 0 || slices.Contains(s.cfg.CORSOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = s.cfg.CORSOrigins
	}
	return cc
}

func (s *HTTPServer) router() *gin.Engine {
	registerValidators()

	r := gin.New()
	r.MaxMultipartMemory = s.cfg.MaxUploadSize * 6
	r.Use(gin.Recovery(), s.requestLogger, cors.New(s.corsConfig()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	prefix := "/" + strings.Trim(s.cfg.PublicPrefix, "/")
	r.GET(prefix+"/*path", s.serveFile)

	api := r.Group("/api")
	if !s.cfg.IsDevelopment() {
		api.Use(rateLimit(s.limiter, s.cfg.RateLimit, s.cfg.RateWindow))
	}

	authed := s.authenticate
	seeker := s.requireRole(models.RoleJobSeeker)
	recruiter := s.requireRole(models.RoleRecruiter)
	reviewer := s.requireRole(models.RoleRecruiter, models.RoleAdmin)

	a := api.Group("/auth")
	a.POST("/register/jobseeker", s.registerJobSeeker)
	a.POST("/register/recruiter", s.registerRecruiter)
	a.POST("/login", s.login)
	a.POST("/refresh", s.refresh)
	a.POST("/logout", authed, s.logout)
	a.PUT("/change-password", authed, s.changePassword)

	j := api.Group("/jobs")
	j.GET("", s.optionalAuth, s.listJobs)
	j.GET("/recommended", authed, seeker, s.recommendedJobs)
	j.GET("/:id", s.getJob)
	j.POST("", authed, recruiter, s.createJob)
	j.PUT("/:id", authed, s.updateJob)
	j.DELETE("/:id", authed, s.deleteJob)

	ap := api.Group("/applications", authed)
	ap.POST("/apply", seeker, s.apply)
	ap.GET("/my-applications", seeker, s.myApplications)
	ap.GET("/job/:id", reviewer, s.applicationsByJob)
	ap.PUT("/:id/status", reviewer, s.updateApplicationStatus)

	u := api.Group("/users", authed, seeker)
	u.GET("/profile", s.seekerProfile)
	u.PUT("/profile", s.updateSeekerProfile)
	u.POST("/save-job", s.saveJob)
	u.DELETE("/unsave-job/:id", s.unsaveJob)
	u.GET("/saved-jobs", s.savedJobs)
	u.DELETE("/account", s.deleteSeekerAccount)

	rc := api.Group("/recruiters", authed, recruiter)
	rc.GET("/profile", s.recruiterProfile)
	rc.PUT("/profile", s.updateRecruiterProfile)
	rc.POST("/upload-documents", s.uploadDocuments)
	rc.GET("/jobs", s.recruiterJobs)
	rc.DELETE("/account", s.deleteRecruiterAccount)

	n := api.Group("/notifications", authed)
	n.GET("", s.listNotifications)
	n.PUT("/:id/read", s.markNotificationRead)
	n.PUT("/read-all", s.markAllNotificationsRead)
	n.GET("/unread/count", s.unreadCount)

	ad := api.Group("/admin", authed, s.requireRole(models.RoleAdmin))
	ad.GET("/profile", s.adminProfile)
	ad.PUT("/profile", s.updateAdminProfile)
	ad.GET("/dashboard/stats", s.dashboardStats)
	ad.GET("/users", s.adminListSeekers)
	ad.GET("/recruiters", s.adminListRecruiters)
	ad.GET("/jobs", s.adminListJobs)
	ad.GET("/applications", s.adminListApplications)
	ad.GET("/verifications/pending", s.pendingVerifications)
	ad.GET("/verifications", s.allVerifications)
	ad.GET("/verifications/:id", s.getVerification)
	ad.GET("/recruiters/:id/documents", s.recruiterDocuments)
	ad.PUT("/verifications/:id/approve", s.approveCompany)
	ad.PUT("/verifications/:id/reject", s.rejectCompany)
	ad.PUT("/users/:id/status", s.setSeekerStatus)
	ad.PUT("/users/:id", s.adminUpdateSeeker)
	ad.DELETE("/users/:id", s.adminDeleteSeeker)
	ad.PUT("/recruiters/:id/status", s.setRecruiterStatus)
	ad.PUT("/recruiters/:id", s.adminUpdateRecruiter)
	ad.DELETE("/recruiters/:id", s.adminDeleteRecruiter)
	ad.DELETE("/jobs/:id", s.adminDeleteJob)

	return r
}
