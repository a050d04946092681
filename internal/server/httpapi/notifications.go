package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) listNotifications(c *gin.Context) {
	list, err := s.svc.Notifications.List(c.Request.Context(), principal(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) markNotificationRead(c *gin.Context) {
	n, err := s.svc.Notifications.MarkRead(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *HTTPServer) markAllNotificationsRead(c *gin.Context) {
	if _, err := s.svc.Notifications.MarkAllRead(c.Request.Context(), principal(c)); err != nil {
		s.fail(c, err)
		return
	}
	message(c, "All notifications marked as read")
}

func (s *HTTPServer) unreadCount(c *gin.Context) {
	n, err := s.svc.Notifications.UnreadCount(c.Request.Context(), principal(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}
