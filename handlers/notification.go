package handlers

import (
	"errors"
	"net/http"

	notificationRepo "servimart/database/repository/notification"
	"servimart/models"

	"github.com/gin-gonic/gin"
)

// recipientRoleFromParam maps the URL role segment onto the stored role.
func recipientRoleFromParam(role string) (models.RecipientRole, bool) {
	switch role {
	case "customer":
		return models.RoleCustomer, true
	case "provider":
		return models.RoleProvider, true
	default:
		return "", false
	}
}

// GetNotificationsHandler lists a recipient's notifications, newest first.
func (hb *HandlerBundle) GetNotificationsHandler(c *gin.Context) {
	role, ok := recipientRoleFromParam(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be customer or provider"})
		return
	}
	list, err := hb.Notifications.GetNotifications(c.Request.Context(), c.Param("recipientId"), role)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetUnreadNotificationsHandler lists only unread notifications.
func (hb *HandlerBundle) GetUnreadNotificationsHandler(c *gin.Context) {
	role, ok := recipientRoleFromParam(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be customer or provider"})
		return
	}
	list, err := hb.Notifications.GetUnread(c.Request.Context(), c.Param("recipientId"), role)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CountUnreadNotificationsHandler returns the unread badge count.
func (hb *HandlerBundle) CountUnreadNotificationsHandler(c *gin.Context) {
	role, ok := recipientRoleFromParam(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be customer or provider"})
		return
	}
	count, err := hb.Notifications.CountUnread(c.Request.Context(), c.Param("recipientId"), role)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkNotificationReadHandler marks one notification as read.
func (hb *HandlerBundle) MarkNotificationReadHandler(c *gin.Context) {
	if err := hb.Notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MarkAllNotificationsReadHandler marks every unread notification as read.
func (hb *HandlerBundle) MarkAllNotificationsReadHandler(c *gin.Context) {
	role, ok := recipientRoleFromParam(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be customer or provider"})
		return
	}
	if err := hb.Notifications.MarkAllRead(c.Request.Context(), c.Param("recipientId"), role); err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteNotificationHandler deletes one notification.
func (hb *HandlerBundle) DeleteNotificationHandler(c *gin.Context) {
	if err := hb.Notifications.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func respondNotificationError(c *gin.Context, err error) {
	if errors.Is(err, notificationRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
