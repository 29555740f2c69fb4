package handler

import (
	"github.com/assetops/backend/internal/application/notification"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles the caller's notifications
type NotificationHandler struct {
	BaseHandler
	notificationService *notification.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List godoc
// @ID           listNotifications
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Param        page        query int    false "Page" default(1)
// @Param        page_size   query int    false "Page size" default(20)
// @Param        unread_only query bool   false "Unread only"
// @Param        level       query string false "info, warning or error"
// @Param        entity_type query string false "Source entity type"
// @Success      200 {object} APIResponse[[]notification.NotificationDTO]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly, err := queryBool(c, "unread_only")
	if err != nil {
		h.BadRequest(c, "unread_only must be a boolean")
		return
	}
	filter, ok := h.ListFilter(c)
	if !ok {
		return
	}
	page, err := h.notificationService.List(c.Request.Context(), filter, unreadOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(&h.BaseHandler, c, page)
}

// UnreadCount godoc
// @ID           countUnreadNotifications
// @Summary      Count my unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200 {object} APIResponse[CountData]
// @Security     BearerAuth
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CountData{Count: count})
}

// MarkRead godoc
// @ID           markNotificationRead
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID" format(uuid)
// @Success      200 {object} APIResponse[notification.NotificationDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	runAction(&h.BaseHandler, c, h.notificationService.MarkRead)
}

// MarkAllRead godoc
// @ID           markAllNotificationsRead
// @Summary      Mark all my notifications read
// @Tags         notifications
// @Produce      json
// @Success      200 {object} APIResponse[notification.ReadAllResult]
// @Security     BearerAuth
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	result, err := h.notificationService.MarkAllRead(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
