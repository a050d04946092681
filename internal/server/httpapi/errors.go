package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/gin-gonic/gin"
)

// statusOf maps an error class to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail writes err as {"message": ...} and aborts the chain. Unclassified
// errors are logged and, outside development, replaced by a generic message.
func (s *HTTPServer) fail(c *gin.Context, err error) {
	status := statusOf(err)
	msg := common.Message(err)

	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		if !s.cfg.IsDevelopment() {
			msg = "Internal Server Error"
		}
	}
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

func message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
