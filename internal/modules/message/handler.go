package message

import (
	"net/http"

	"designmarket/internal/middleware"
	"designmarket/internal/pkg/response"
	"designmarket/internal/pkg/utils"
	"designmarket/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	messages := rg.Group("/messages")
	{
		messages.GET("", h.ListMessages)
		messages.POST("", h.SendMessage)
		messages.PATCH("/:id/read", h.MarkAsRead)
	}
}

// ListMessages returns messages sent to or by the caller.
// @Summary		List messages
// @Tags		Messages
// @Security	BearerAuth
// @Param		design_id	query	int	false	"Filter by design"
// @Param		limit	query	int	false	"Page size (default 20, max 100)"
// @Param		offset	query	int	false	"Rows to skip"
// @Success		200	{object}		map[string]interface{} "Messages page"
// @Failure		400	{object}		map[string]interface{} "Invalid design ID"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Router		/messages [GET]
func (h *Handler) ListMessages(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var designID int64
	if raw := c.Query("design_id"); raw != "" {
		id, ok := utils.ParseID(raw)
		if !ok {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid design ID")
			return
		}
		designID = id
	}

	page := utils.PageFromQuery(c)
	list, err := h.service.ListMessages(c.Request.Context(), actor, designID, page)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"messages": list,
		"limit":    page.Limit,
		"offset":   page.Offset,
	})
}

// SendMessage sends a message to another user.
// @Summary		Send message
// @Tags		Messages
// @Security	BearerAuth
// @Param		request	body	SendMessageRequest	true	"receiver_id, design_id, content"
// @Success		201	{object}		map[string]interface{} "Message sent"
// @Failure		400	{object}		map[string]interface{} "Validation error"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		404	{object}		map[string]interface{} "Recipient or design not found"
// @Router		/messages [POST]
func (h *Handler) SendMessage(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	m, err := h.service.SendMessage(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": m})
}

// MarkAsRead marks a received message as read.
// @Summary		Mark message read
// @Tags		Messages
// @Security	BearerAuth
// @Param		id	path	int	true	"Message ID"
// @Success		200	{object}		map[string]interface{} "Marked read"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		404	{object}		map[string]interface{} "Message not found or not addressed to the caller"
// @Router		/messages/:id/read [PATCH]
func (h *Handler) MarkAsRead(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), actor, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "is_read": true})
}
