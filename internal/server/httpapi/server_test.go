package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfData = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

type testAPI struct {
	h   http.Handler
	rm  *repomanager.MemoryRepositoryManager
	svc *services.Services
}

func newTestAPI(t *testing.T, mutate ...func(*config.Config)) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDriver = config.DriverMemory
	for _, m := range mutate {
		m(cfg)
	}

	disk, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)
	files := storage.NewFiles(disk, cfg.PublicPrefix, cfg.MaxUploadSize)
	rm := repomanager.NewMemoryRepositoryManager()
	svc := services.New(rm, files, nil, logging.Nop{}, cfg)

	srv := NewHTTPServer(cfg, logging.Nop{}, svc, files, nil)
	return &testAPI{h: srv.Handler(), rm: rm, svc: svc}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	} else {
		r = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

type part struct {
	field, filename string
	data            []byte
}

func (a *testAPI) upload(t *testing.T, method, path, token string, fields map[string]string, parts ...part) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type session struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (a *testAPI) registerSeeker(t *testing.T, email string) session {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register/jobseeker", "", gin.H{
		"fullName": "Sita Sharma", "email": email, "password": "Secret123", "phone": "9812345678",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[session](t, rec)
}

func (a *testAPI) registerRecruiter(t *testing.T, email string, verified bool) session {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register/recruiter", "", gin.H{
		"fullName": "Hari Karki", "email": email, "password": "Secret123",
		"phone": "9712345678", "companyName": "Himal Tech",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	s := decode[session](t, rec)
	if verified {
		require.NoError(t, a.rm.Recruiters(nil).SetVerificationStatus(context.Background(), s.ID, models.RecruiterVerified, time.Now()))
	}
	return s
}

func (a *testAPI) loginAdmin(t *testing.T) session {
	t.Helper()
	_, err := a.svc.Admin.CreateAdmin(context.Background(), "admin@example.com", "Admin1234")
	require.NoError(t, err)
	rec := a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@example.com", "password": "Admin1234"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[session](t, rec)
}

func jobBody(title string) gin.H {
	return gin.H{
		"title":              title,
		"description":        "Build and run services",
		"skillsRequired":     []string{"Go", "SQL"},
		"salaryRange":        gin.H{"min": 60000, "max": 120000},
		"experienceRequired": "1-3 years",
		"jobType":            "Full-time",
		"location":           "Lalitpur",
		"category":           "IT",
		"deadline":           time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
	}
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, rec)["message"].(string)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", messageOf(t, rec))
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register/jobseeker", "", gin.H{
		"fullName": "Sita Sharma", "email": "sita@example.com", "password": "Secret123", "phone": "0123456789",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Phone number must be a valid Nepal number starting with 98 or 97", messageOf(t, rec))

	rec = api.do(t, http.MethodPost, "/api/auth/register/jobseeker", "", gin.H{
		"fullName": "S1", "email": "not-an-email", "password": "weak", "phone": "9812345678",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[struct {
		Errors []fieldError `json:"errors"`
	}](t, rec)
	fields := make([]string, 0, len(body.Errors))
	for _, fe := range body.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"fullName", "email", "password"}, fields)

	rec = api.do(t, http.MethodPost, "/api/auth/register/recruiter", "", gin.H{
		"fullName": "Hari Karki", "email": "hari@example.com", "password": "Secret123", "phone": "9712345678",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "companyName is required", messageOf(t, rec))

	api.registerSeeker(t, "dup@example.com")
	rec = api.do(t, http.MethodPost, "/api/auth/register/recruiter", "", gin.H{
		"fullName": "Hari Karki", "email": "dup@example.com", "password": "Secret123",
		"phone": "9712345678", "companyName": "Himal Tech",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)
	reg := api.registerSeeker(t, "sita@example.com")
	assert.Equal(t, "jobseeker", reg.Role)
	assert.NotEmpty(t, reg.Token)

	rec := api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "sita@example.com", "password": "Wrong1234"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", messageOf(t, rec))

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "Sita@Example.com", "password": "Secret123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[session](t, rec)
	assert.Equal(t, reg.ID, login.ID)

	rec = api.do(t, http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = api.do(t, http.MethodGet, "/api/users/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/users/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[models.JobSeeker](t, rec)
	assert.Equal(t, "sita@example.com", profile.Email)

	rec = api.do(t, http.MethodGet, "/api/recruiters/profile", login.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": login.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rotated := decode[session](t, rec)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	rec = api.do(t, http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": login.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/auth/change-password", rotated.Token, gin.H{
		"currentPassword": "Secret123", "newPassword": "Better123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/api/auth/logout", rotated.Token, gin.H{"refreshToken": rotated.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": rotated.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJobAndApplicationFlow(t *testing.T) {
	api := newTestAPI(t)
	pending := api.registerRecruiter(t, "pending@example.com", false)
	rec := api.do(t, http.MethodPost, "/api/jobs", pending.Token, jobBody("Go Developer"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "company must be verified to post jobs", messageOf(t, rec))

	owner := api.registerRecruiter(t, "owner@example.com", true)
	bad := jobBody("Bad Salary")
	bad["salaryRange"] = gin.H{"min": 10, "max": 1}
	rec = api.do(t, http.MethodPost, "/api/jobs", owner.Token, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad["salaryRange"] = gin.H{}
	rec = api.do(t, http.MethodPost, "/api/jobs", owner.Token, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "min is required", messageOf(t, rec))

	rec = api.do(t, http.MethodPost, "/api/jobs", owner.Token, jobBody("Go Developer"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	job := decode[models.Job](t, rec)
	assert.Equal(t, "Himal Tech", job.CompanyName)

	rec = api.do(t, http.MethodPut, "/api/jobs/"+job.ID, owner.Token, gin.H{"salaryRange": gin.H{"max": 150000}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.Salary{Min: 60000, Max: 150000}, decode[models.Job](t, rec).Salary)

	rec = api.do(t, http.MethodGet, "/api/jobs?category=IT&skills=Go,Rust&minSalary=50000", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.JobWithCompany](t, rec), 1)
	rec = api.do(t, http.MethodGet, "/api/jobs?category=Sales", "", nil)
	assert.Empty(t, decode[[]models.JobWithCompany](t, rec))
	rec = api.do(t, http.MethodGet, "/api/jobs?minSalary=lots", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/jobs/"+job.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.JobWithCompany](t, rec)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Himal Tech", got.Company.CompanyName)

	seeker := api.registerSeeker(t, "applicant@example.com")
	rec = api.do(t, http.MethodPost, "/api/applications/apply", seeker.Token, gin.H{"jobId": job.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "please upload your resume before applying", messageOf(t, rec))

	rec = api.upload(t, http.MethodPut, "/api/users/profile", seeker.Token,
		map[string]string{"skills": "Go, Docker", "phone": "9800000000"},
		part{field: "resume", filename: "cv.pdf", data: pdfData})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decode[models.JobSeeker](t, rec)
	assert.Equal(t, []string{"Go", "Docker"}, profile.Skills)
	require.NotEmpty(t, profile.Resume)

	rec = api.do(t, http.MethodGet, profile.Resume, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, pdfData, rec.Body.Bytes())

	rec = api.do(t, http.MethodGet, "/api/jobs/recommended", seeker.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.JobWithCompany](t, rec), 1)

	rec = api.do(t, http.MethodPost, "/api/applications/apply", seeker.Token, gin.H{"jobId": job.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	app := decode[models.Application](t, rec)
	assert.Equal(t, models.ApplicationPending, app.Status)

	rec = api.do(t, http.MethodPost, "/api/applications/apply", seeker.Token, gin.H{"jobId": job.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/recruiters/jobs", owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	own := decode[[]models.RecruiterJob](t, rec)
	require.Len(t, own, 1)
	assert.Equal(t, 1, own[0].ApplicationCount)

	rec = api.do(t, http.MethodGet, "/api/applications/job/"+job.ID, pending.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/applications/job/"+job.ID, owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = api.do(t, http.MethodPut, "/api/applications/"+app.ID+"/status", owner.Token, gin.H{"status": "hired"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(t, http.MethodPut, "/api/applications/"+app.ID+"/status", owner.Token, gin.H{"status": "accepted", "notes": "Welcome"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/notifications/unread/count", seeker.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, rec)["count"])

	rec = api.do(t, http.MethodPut, "/api/notifications/read-all", seeker.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodGet, "/api/notifications/unread/count", seeker.Token, nil)
	assert.EqualValues(t, 0, decode[map[string]any](t, rec)["count"])

	rec = api.do(t, http.MethodGet, "/api/applications/my-applications", seeker.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]models.ApplicationWithJob](t, rec)
	require.Len(t, mine, 1)
	assert.Equal(t, "Go Developer", mine[0].Job.Title)

	rec = api.do(t, http.MethodDelete, "/api/jobs/"+job.ID, pending.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = api.do(t, http.MethodDelete, "/api/jobs/"+job.ID, owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodGet, "/api/jobs/"+job.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSavedJobsEndpoints(t *testing.T) {
	api := newTestAPI(t)
	owner := api.registerRecruiter(t, "saver-owner@example.com", true)
	seeker := api.registerSeeker(t, "saver@example.com")

	rec := api.do(t, http.MethodPost, "/api/jobs", owner.Token, jobBody("Data Engineer"))
	require.Equal(t, http.StatusCreated, rec.Code)
	job := decode[models.Job](t, rec)

	rec = api.do(t, http.MethodPost, "/api/users/save-job", seeker.Token, gin.H{"jobId": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = api.do(t, http.MethodPost, "/api/users/save-job", seeker.Token, gin.H{"jobId": job.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodPost, "/api/users/save-job", seeker.Token, gin.H{"jobId": job.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/users/saved-jobs", seeker.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.JobWithCompany](t, rec), 1)

	rec = api.do(t, http.MethodDelete, "/api/users/unsave-job/"+job.ID, seeker.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		SavedJobs []string `json:"savedJobs"`
	}](t, rec)
	assert.Empty(t, body.SavedJobs)

	rec = api.do(t, http.MethodDelete, "/api/users/account", seeker.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodGet, "/api/users/profile", seeker.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerificationEndpoints(t *testing.T) {
	api := newTestAPI(t)
	rec := api.registerRecruiter(t, "docs@example.com", false)
	admin := api.loginAdmin(t)

	resp := api.upload(t, http.MethodPost, "/api/recruiters/upload-documents", rec.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = api.upload(t, http.MethodPost, "/api/recruiters/upload-documents", rec.Token, nil,
		part{field: "companyDocs", filename: "notes.txt", data: []byte("just text")})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Company documents must be PDF, JPG, or PNG", messageOf(t, resp))

	resp = api.upload(t, http.MethodPost, "/api/recruiters/upload-documents", rec.Token, nil,
		part{field: "companyDocs", filename: "registration.pdf", data: pdfData})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	uploaded := decode[struct {
		Verification models.CompanyVerification `json:"verification"`
	}](t, resp)
	assert.Equal(t, models.VerificationPending, uploaded.Verification.Status)

	resp = api.do(t, http.MethodGet, "/api/admin/verifications/pending", rec.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = api.do(t, http.MethodGet, "/api/admin/verifications/pending", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[[]map[string]any](t, resp), 1)

	resp = api.do(t, http.MethodGet, "/api/admin/recruiters/"+rec.ID+"/documents", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	docs := decode[models.RecruiterDocuments](t, resp)
	require.Len(t, docs.Documents, 1)
	assert.Equal(t, docs.Documents[0].Path, docs.Documents[0].URL)

	id := uploaded.Verification.ID
	resp = api.do(t, http.MethodPut, "/api/admin/verifications/"+id+"/approve", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = api.do(t, http.MethodGet, "/api/recruiters/profile", rec.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, models.RecruiterVerified, decode[models.Recruiter](t, resp).VerificationStatus)

	resp = api.do(t, http.MethodPut, "/api/admin/verifications/"+id+"/reject", admin.Token, gin.H{})
	require.Equal(t, http.StatusOK, resp.Code)
	rejected := decode[struct {
		Verification models.CompanyVerification `json:"verification"`
	}](t, resp)
	assert.Equal(t, models.DefaultRejectionReason, rejected.Verification.RejectionReason)

	resp = api.do(t, http.MethodGet, "/api/notifications", rec.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[[]map[string]any](t, resp), 2)

	resp = api.do(t, http.MethodGet, "/api/admin/dashboard/stats", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	stats := decode[models.DashboardStats](t, resp)
	assert.Equal(t, 1, stats.TotalRecruiters)
	assert.Zero(t, stats.PendingVerifications)
}

func TestAdminManagesAccounts(t *testing.T) {
	api := newTestAPI(t)
	admin := api.loginAdmin(t)
	seeker := api.registerSeeker(t, "managed@example.com")

	rec := api.do(t, http.MethodPut, "/api/admin/users/"+seeker.ID+"/status", admin.Token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/admin/users/"+seeker.ID+"/status", admin.Token, gin.H{"isActive": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deactivated successfully", messageOf(t, rec))

	rec = api.do(t, http.MethodGet, "/api/users/profile", seeker.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "account is deactivated", messageOf(t, rec))

	rec = api.do(t, http.MethodPut, "/api/admin/profile", admin.Token, gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/admin/users/"+seeker.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodDelete, "/api/admin/users/"+seeker.ID, admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/admin/users", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.JobSeeker](t, rec))
}

func TestRateLimitOutsideDevelopment(t *testing.T) {
	api := newTestAPI(t, func(c *config.Config) {
		c.Environment = config.EnvProduction
		c.RateLimit = 2
	})

	for i := 0; i < 2; i++ {
		rec := api.do(t, http.MethodGet, "/api/jobs", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := api.do(t, http.MethodGet, "/api/jobs", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// files are served outside /api
	rec = api.do(t, http.MethodGet, "/uploads/resumes/missing.pdf", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	api.h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost))
}
