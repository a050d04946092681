package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

func bearerToken(c *gin.Context) string {
	h := c.GetHeader(common.AuthorizationHeader)
	if len(h) < len(common.BearerPrefix) || !strings.EqualFold(h[:len(common.BearerPrefix)], common.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(h[len(common.BearerPrefix):])
}

// authenticate resolves the bearer token to an active principal.
func (s *HTTPServer) authenticate(c *gin.Context) {
	p, err := s.svc.Auth.Authenticate(c.Request.Context(), bearerToken(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Set(principalKey, p)
	c.Next()
}

// optionalAuth attaches the principal when a valid token is present and
// otherwise serves the request anonymously.
func (s *HTTPServer) optionalAuth(c *gin.Context) {
	if tok := bearerToken(c); tok != "" {
		if p, err := s.svc.Auth.Authenticate(c.Request.Context(), tok); err == nil {
			c.Set(principalKey, p)
		}
	}
	c.Next()
}

// requireRole must run after authenticate.
func (s *HTTPServer) requireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := principal(c)
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		s.fail(c, common.ErrRoleNotAllowed)
	}
}

// principal returns the caller; the zero value for anonymous requests.
func principal(c *gin.Context) models.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(models.Principal); ok {
			return p
		}
	}
	return models.Principal{}
}

func (s *HTTPServer) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	args := []any{
		"method", c.Request.Method,
		"route", route,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"ip", c.ClientIP(),
	}
	if p := principal(c); p.ID != "" {
		args = append(args, "principal_id", p.ID, "role", p.Role)
	}
	s.logger.Info(c.Request.Context(), "request", args...)
}
