package handlers

import (
	"net/http"

	"disccount_backend/internal/services"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	notifications.Use(h.RequireAuth())
	{
		notifications.POST("", h.Create)
		notifications.GET("/me", h.ListMine)
		notifications.PATCH("/me/read-all", h.MarkAllAsRead)
		notifications.PATCH("/:id/read", h.MarkAsRead)
		notifications.DELETE("/:id", h.Delete)
	}
}

func (h *NotificationHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateNotificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	notification, err := h.notificationService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}

// ListMine godoc
// @Summary      Page through the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "Page, from 1"
// @Param        page_size query int false "Page size, at most 100"
// @Success      200 {object} dto.NotificationListResponse
// @Router       /api/v1/notifications/me [get]
func (h *NotificationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.notificationService.List(c.Request.Context(), h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrNotificationNotFound)
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkAsRead(c.Request.Context(), h.GetDB(c), userID, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllAsRead(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrNotificationNotFound)
	if !ok {
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), h.GetDB(c), userID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Notification deleted"})
}
