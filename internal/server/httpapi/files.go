package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// serveFile streams a stored upload with its sniffed content type.
func (s *HTTPServer) serveFile(c *gin.Context) {
	rc, ct, err := s.files.Open(c.Request.Context(), c.Request.URL.Path)
	if err != nil {
		s.fail(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", ct)
	c.Header("X-Content-Type-Options", "nosniff")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		s.logger.Warn(c.Request.Context(), "file stream interrupted", "path", c.Request.URL.Path, "error", err)
	}
}
