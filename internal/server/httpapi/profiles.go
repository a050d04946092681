package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
	"github.com/gin-gonic/gin"
)

// skillList accepts a JSON array or a comma separated string.
type skillList []string

func (l *skillList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = splitSkills(s)
	return nil
}

func splitSkills(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

type seekerProfileRequest struct {
	FullName   *string   `json:"fullName"`
	Skills     skillList `json:"skills"`
	Experience *string   `json:"experience"`
	Phone      *string   `json:"phone"`
}

type recruiterProfileRequest struct {
	FullName           *string `json:"fullName"`
	CompanyName        *string `json:"companyName"`
	CompanyDescription *string `json:"companyDescription"`
	CompanyAddress     *string `json:"companyAddress"`
	CompanyWebsite     *string `json:"companyWebsite"`
	Phone              *string `json:"phone"`
}

type saveJobRequest struct {
	JobID string `json:"jobId" binding:"required"`
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// readUpload loads one multipart file, refusing anything above the
// configured size.
func (s *HTTPServer) readUpload(fh *multipart.FileHeader) (storage.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return storage.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadSize+1))
	if err != nil {
		return storage.Upload{}, err
	}
	if int64(len(data)) > s.cfg.MaxUploadSize {
		return storage.Upload{}, common.Validationf("file too large, maximum is %d bytes", s.cfg.MaxUploadSize)
	}
	return storage.Upload{Filename: fh.Filename, Data: data}, nil
}

// formUpload returns nil when the field is absent.
func (s *HTTPServer) formUpload(c *gin.Context, field string) (*storage.Upload, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, common.Validationf("invalid upload %q", field)
	}
	up, err := s.readUpload(fh)
	if err != nil {
		return nil, err
	}
	return &up, nil
}

func formValue(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

func (s *HTTPServer) seekerProfile(c *gin.Context) {
	js, err := s.svc.Profiles.JobSeeker(c.Request.Context(), principal(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, js)
}

// updateSeekerProfile takes either JSON or a multipart form carrying the
// optional "resume" and "profilePhoto" files.
func (s *HTTPServer) updateSeekerProfile(c *gin.Context) {
	var u services.SeekerUpdate
	if isMultipart(c) {
		u.FullName = formValue(c, "fullName")
		u.Experience = formValue(c, "experience")
		u.Phone = formValue(c, "phone")
		if skills := c.PostFormArray("skills"); len(skills) == 1 {
			u.Skills = splitSkills(skills[0])
		} else {
			u.Skills = skills
		}

		var err error
		if u.Resume, err = s.formUpload(c, "resume"); err != nil {
			s.fail(c, err)
			return
		}
		if u.Photo, err = s.formUpload(c, "profilePhoto"); err != nil {
			s.fail(c, err)
			return
		}
	} else {
		var req seekerProfileRequest
		if !bind(c, &req) {
			return
		}
		u.FullName, u.Skills, u.Experience, u.Phone = req.FullName, req.Skills, req.Experience, req.Phone
	}

	js, err := s.svc.Profiles.UpdateJobSeeker(c.Request.Context(), principal(c).ID, u)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, js)
}

func (s *HTTPServer) saveJob(c *gin.Context) {
	var req saveJobRequest
	if !bind(c, &req) {
		return
	}
	ids, err := s.svc.Profiles.SaveJob(c.Request.Context(), principal(c).ID, req.JobID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job saved successfully", "savedJobs": ids})
}

func (s *HTTPServer) unsaveJob(c *gin.Context) {
	ids, err := s.svc.Profiles.UnsaveJob(c.Request.Context(), principal(c).ID, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job unsaved successfully", "savedJobs": ids})
}

func (s *HTTPServer) savedJobs(c *gin.Context) {
	jobs, err := s.svc.Profiles.SavedJobs(c.Request.Context(), principal(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *HTTPServer) deleteSeekerAccount(c *gin.Context) {
	if err := s.svc.Profiles.DeleteJobSeeker(c.Request.Context(), principal(c).ID); err != nil {
		s.fail(c, err)
		return
	}
	message(c, "Account deleted successfully")
}

func (s *HTTPServer) recruiterProfile(c *gin.Context) {
	rec, err := s.svc.Profiles.Recruiter(c.Request.Context(), principal(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *HTTPServer) updateRecruiterProfile(c *gin.Context) {
	var req recruiterProfileRequest
	if !bind(c, &req) {
		return
	}
	rec, err := s.svc.Profiles.UpdateRecruiter(c.Request.Context(), principal(c).ID, services.RecruiterUpdate{
		FullName:           req.FullName,
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		CompanyAddress:     req.CompanyAddress,
		CompanyWebsite:     req.CompanyWebsite,
		Phone:              req.Phone,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// uploadDocuments reads up to MaxVerificationDocuments "companyDocs" files.
func (s *HTTPServer) uploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		s.fail(c, services.ErrNoDocuments)
		return
	}
	headers := form.File["companyDocs"]
	if len(headers) > services.MaxVerificationDocuments {
		s.fail(c, common.Validationf("at most %d documents can be uploaded", services.MaxVerificationDocuments))
		return
	}

	uploads := make([]storage.Upload, 0, len(headers))
	for _, fh := range headers {
		up, err := s.readUpload(fh)
		if err != nil {
			s.fail(c, err)
			return
		}
		uploads = append(uploads, up)
	}

	v, err := s.svc.Verifications.UploadDocuments(c.Request.Context(), principal(c), uploads)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Documents uploaded successfully", "verification": v})
}

func (s *HTTPServer) recruiterJobs(c *gin.Context) {
	jobs, err := s.svc.Jobs.ListByRecruiter(c.Request.Context(), principal(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *HTTPServer) deleteRecruiterAccount(c *gin.Context) {
	if err := s.svc.Profiles.DeleteRecruiter(c.Request.Context(), principal(c).ID); err != nil {
		s.fail(c, err)
		return
	}
	message(c, "Account deleted successfully")
}
