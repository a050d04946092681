package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

// date accepts RFC 3339 timestamps and plain "2006-01-02" dates. A plain
// date means the end of that day in UTC.
type date struct{ time.Time }

func (d *date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t.Add(24*time.Hour - time.Second)
	return nil
}

// salaryRange is the partial form accepted by updates.
type salaryRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type salaryBounds struct {
	Min *float64 `json:"min" binding:"required"`
	Max *float64 `json:"max" binding:"required"`
}

type jobRequest struct {
	Title          string                 `json:"title" binding:"required"`
	Description    string                 `json:"description" binding:"required"`
	SkillsRequired []string               `json:"skillsRequired"`
	Salary         *salaryBounds          `json:"salaryRange" binding:"required"`
	Experience     models.ExperienceLevel `json:"experienceRequired" binding:"required"`
	JobType        models.JobType         `json:"jobType" binding:"required"`
	Location       string                 `json:"location" binding:"required"`
	Category       models.Category        `json:"category" binding:"required"`
	Deadline       *date                  `json:"deadline" binding:"required"`
	IsActive       *bool                  `json:"isActive"`
}

func (r jobRequest) draft() models.JobDraft {
	return models.JobDraft{
		Title:          strings.TrimSpace(r.Title),
		Description:    r.Description,
		SkillsRequired: models.NormalizeSkills(r.SkillsRequired),
		Experience:     r.Experience,
		JobType:        r.JobType,
		Location:       strings.TrimSpace(r.Location),
		Category:       r.Category,
		Deadline:       r.Deadline.Time,
		Salary:         models.Salary{Min: *r.Salary.Min, Max: *r.Salary.Max},
		IsActive:       r.IsActive,
	}
}

type jobPatchRequest struct {
	Title          *string                 `json:"title"`
	Description    *string                 `json:"description"`
	SkillsRequired []string                `json:"skillsRequired"`
	Salary         *salaryRange            `json:"salaryRange"`
	Experience     *models.ExperienceLevel `json:"experienceRequired"`
	JobType        *models.JobType         `json:"jobType"`
	Location       *string                 `json:"location"`
	Category       *models.Category        `json:"category"`
	Deadline       *date                   `json:"deadline"`
	IsActive       *bool                   `json:"isActive"`
}

func (r jobPatchRequest) patch() models.JobPatch {
	p := models.JobPatch{
		Title:       r.Title,
		Description: r.Description,
		Experience:  r.Experience,
		JobType:     r.JobType,
		Location:    r.Location,
		Category:    r.Category,
		IsActive:    r.IsActive,
	}
	if r.SkillsRequired != nil {
		p.SkillsRequired = models.NormalizeSkills(r.SkillsRequired)
	}
	if r.Salary != nil {
		p.SalaryMin, p.SalaryMax = r.Salary.Min, r.Salary.Max
	}
	if r.Deadline != nil {
		p.Deadline = &r.Deadline.Time
	}
	return p
}

// jobFilter reads the listing query string. Malformed salary bounds are a
// validation error.
func jobFilter(c *gin.Context) (models.JobFilter, error) {
	f := models.JobFilter{
		Category:   models.Category(c.Query("category")),
		Experience: models.ExperienceLevel(c.Query("experience")),
		JobType:    models.JobType(c.Query("jobType")),
		Location:   strings.TrimSpace(c.Query("location")),
		Search:     strings.TrimSpace(c.Query("search")),
	}
	if skills := c.Query("skills"); skills != "" {
		f.Skills = models.NormalizeSkills(strings.Split(skills, ","))
	}
	for name, dst := range map[string]**float64{"minSalary": &f.MinSalary, "maxSalary": &f.MaxSalary} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, common.Validationf("%s must be a number", name)
		}
		*dst = &v
	}
	return f, nil
}

func (s *HTTPServer) listJobs(c *gin.Context) {
	f, err := jobFilter(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	jobs, err := s.svc.Jobs.List(c.Request.Context(), principal(c), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *HTTPServer) recommendedJobs(c *gin.Context) {
	jobs, err := s.svc.Jobs.Recommend(c.Request.Context(), principal(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *HTTPServer) getJob(c *gin.Context) {
	job, err := s.svc.Jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *HTTPServer) createJob(c *gin.Context) {
	var req jobRequest
	if !bind(c, &req) {
		return
	}
	job, err := s.svc.Jobs.Create(c.Request.Context(), principal(c), req.draft())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (s *HTTPServer) updateJob(c *gin.Context) {
	var req jobPatchRequest
	if !bind(c, &req) {
		return
	}
	job, err := s.svc.Jobs.Update(c.Request.Context(), principal(c), c.Param("id"), req.patch())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *HTTPServer) deleteJob(c *gin.Context) {
	if err := s.svc.Jobs.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	message(c, "Job deleted successfully")
}
