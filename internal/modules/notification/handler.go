package notification

import (
	"net/http"

	"designmarket/internal/middleware"
	"designmarket/internal/pkg/response"
	"designmarket/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.GET("", h.GetNotifications)
		g.GET("/unread-count", h.GetUnreadCount)
		g.PATCH("/:id/read", h.MarkAsRead)
		g.POST("/read-all", h.MarkAllAsRead)
		g.PATCH("/read-all", h.MarkAllAsRead)
	}
}

// GetNotifications lists the caller's notifications, newest first.
// @Summary		List notifications
// @Tags		Notifications
// @Security	BearerAuth
// @Param		limit	query	int	false	"Page size (default 20, max 100)"
// @Param		offset	query	int	false	"Rows to skip"
// @Success		200	{object}		map[string]interface{} "Notifications page"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Router		/notifications [GET]
func (h *Handler) GetNotifications(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	page := utils.PageFromQuery(c)
	list, unread, err := h.service.GetUserNotifications(c.Request.Context(), actor, page)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  unread,
		"limit":         page.Limit,
		"offset":        page.Offset,
	})
}

// GetUnreadCount returns how many notifications are unread.
// @Summary		Unread count
// @Tags		Notifications
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "Unread count"
// @Router		/notifications/unread-count [GET]
func (h *Handler) GetUnreadCount(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	unread, err := h.service.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread_count": unread})
}

// MarkAsRead marks one notification as read.
// @Summary		Mark notification read
// @Tags		Notifications
// @Security	BearerAuth
// @Param		id	path	int	true	"Notification ID"
// @Success		200	{object}		map[string]interface{} "Marked read"
// @Failure		404	{object}		map[string]interface{} "Notification not found"
// @Router		/notifications/:id/read [PATCH]
func (h *Handler) MarkAsRead(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), actor, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "is_read": true})
}

// MarkAllAsRead marks every notification of the caller as read.
// @Summary		Mark all read
// @Tags		Notifications
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "Number of notifications updated"
// @Router		/notifications/read-all [POST]
func (h *Handler) MarkAllAsRead(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	updated, err := h.service.MarkAllAsRead(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}
