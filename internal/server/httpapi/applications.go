package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

type applyRequest struct {
	JobID string `json:"jobId" binding:"required"`
}

type statusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
	Notes  *string                  `json:"notes"`
}

func (s *HTTPServer) apply(c *gin.Context) {
	var req applyRequest
	if !bind(c, &req) {
		return
	}
	app, err := s.svc.Applications.Submit(c.Request.Context(), principal(c), req.JobID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (s *HTTPServer) myApplications(c *gin.Context) {
	apps, err := s.svc.Applications.ListMine(c.Request.Context(), principal(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (s *HTTPServer) applicationsByJob(c *gin.Context) {
	apps, err := s.svc.Applications.ListByJob(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (s *HTTPServer) updateApplicationStatus(c *gin.Context) {
	var req statusRequest
	if !bind(c, &req) {
		return
	}
	app, err := s.svc.Applications.UpdateStatus(c.Request.Context(), principal(c), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
