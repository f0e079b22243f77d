package handlers

import (
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/grouped", h.GetGroupedNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns paginated notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	page, limit := pagination(c)

	notifications, total, err := h.notifications.List(c.Request().Context(), getUserIDFromContext(c), page, limit)
	if err != nil {
		return serviceError(err, "Unable to load notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"notifications": notifications,
		"meta":          paginationMeta(page, limit, total),
	})
}

// GetGroupedNotifications returns notifications grouped by time period
func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	ctx := c.Request().Context()
	currentUserID := getUserIDFromContext(c)

	grouped, err := h.notifications.Grouped(ctx, currentUserID)
	if err != nil {
		return serviceError(err, "Unable to load notifications")
	}
	unreadCount, err := h.notifications.UnreadCount(ctx, currentUserID)
	if err != nil {
		return serviceError(err, "Unable to load notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": grouped,
			"unreadCount":   unreadCount,
		},
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return serviceError(err, "Unable to load notifications")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	notifID, err := parseIDParam(c, "id", "Invalid notification ID")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Request().Context(), getUserIDFromContext(c), notifID); err != nil {
		return serviceError(err, "Unable to update notification")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Notification marked as read"})
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notifications.MarkAllRead(c.Request().Context(), getUserIDFromContext(c)); err != nil {
		return serviceError(err, "Unable to update notifications")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "All notifications marked as read"})
}
