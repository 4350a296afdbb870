package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListNotifications(c *gin.Context) {
	role := actorRole(c)
	c.JSON(http.StatusOK, gin.H{
		"notifications": s.notifications.ListForRole(role),
		"unreadCount":   s.notifications.UnreadCount(role),
	})
}

func (s *Server) GetUnreadCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"unreadCount": s.notifications.UnreadCount(actorRole(c))})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	s.notifications.MarkRead(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) MarkAllNotificationsRead(c *gin.Context) {
	role := actorRole(c)
	s.notifications.MarkAllReadForRole(role)
	c.JSON(http.StatusOK, gin.H{"unreadCount": s.notifications.UnreadCount(role)})
}
