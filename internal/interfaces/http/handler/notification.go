package handler

import (
	"github.com/gin-gonic/gin"
	notificationapp "github.com/sellaids/backend/internal/application/notification"
)

// NotificationHandler serves the admin notification feed and manual SMS
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notificationapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List godoc
// @Summary      Notification feed
// @Tags         admin-notifications
// @Produce      json
// @Param        tab query string false "all, unread, vendor, product, review, ticket or system"
// @Param        page query int false "Page number"
// @Success      200 {object} dto.Response{data=[]notificationapp.NotificationResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var query notificationapp.NotificationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.notificationService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// UnreadCount godoc
// @Summary      Unread notifications
// @Tags         admin-notifications
// @Produce      json
// @Success      200 {object} dto.Response{data=notificationapp.UnreadCountResponse}
// @Security     BearerAuth
// @Router       /admin/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, count)
}

// MarkRead godoc
// @Summary      Mark notification read
// @Tags         admin-notifications
// @Produce      json
// @Param        id path string true "Notification ID"
// @Success      200 {object} dto.Response{data=notificationapp.NotificationResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	n, err := h.notificationService.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, n)
}

// MarkAllRead godoc
// @Summary      Mark all notifications read
// @Tags         admin-notifications
// @Produce      json
// @Success      200 {object} dto.Response{data=notificationapp.MarkAllReadResponse}
// @Security     BearerAuth
// @Router       /admin/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	result, err := h.notificationService.MarkAllRead(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete notification
// @Tags         admin-notifications
// @Param        id path string true "Notification ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.notificationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SendSMS godoc
// @Summary      Send SMS
// @Description  Sends a manual SMS through the configured gateway
// @Tags         admin-notifications
// @Accept       json
// @Produce      json
// @Param        request body notificationapp.SendSMSInput true "Recipients and text"
// @Success      200 {object} dto.Response{data=notificationapp.SMSResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/notifications/sms [post]
func (h *NotificationHandler) SendSMS(c *gin.Context) {
	var req notificationapp.SendSMSInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	result, err := h.notificationService.SendSMS(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
