package payment

import (
	"errors"
	"io"
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

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments", h.ListPayments)
	rg.POST("/payments", h.CreatePayment)
	rg.POST("/payments/:id/succeed", h.MarkSucceeded)
}

// ListPayments returns payments visible to the caller: clients see their own, designers see payments for their designs.
// @Summary		List payments
// @Tags		Payments
// @Security	BearerAuth
// @Param		limit	query	int	false	"Page size (default 20, max 100)"
// @Param		offset	query	int	false	"Rows to skip"
// @Success		200	{object}		map[string]interface{} "Payments page"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Router		/payments [GET]
func (h *Handler) ListPayments(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	page := utils.PageFromQuery(c)
	payments, err := h.service.ListPayments(c.Request.Context(), actor, page)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"payments": payments,
		"limit":    page.Limit,
		"offset":   page.Offset,
	})
}

// CreatePayment records a pending payment for a booking that is not cancelled.
// @Summary		Create payment
// @Tags		Payments
// @Security	BearerAuth
// @Param		request	body	CreatePaymentRequest	true	"booking_id, amount, payment_method, transaction_id"
// @Success		201	{object}		map[string]interface{} "Payment created"
// @Failure		400	{object}		map[string]interface{} "Validation error: amount must be positive with at most 2 decimal places"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Not the booking's client"
// @Failure		409	{object}		map[string]interface{} "Booking already has a payment"
// @Router		/payments [POST]
func (h *Handler) CreatePayment(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	p, err := h.service.CreatePayment(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

// MarkSucceeded marks a pending payment as succeeded. Admin only.
// @Summary		Mark payment succeeded
// @Tags		Payments
// @Security	BearerAuth
// @Param		id	path	int	true	"Payment ID"
// @Param		request	body	SucceedPaymentRequest	false	"optional transaction_id, paid_at"
// @Success		200	{object}		map[string]interface{} "Payment succeeded"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Admin role required"
// @Failure		404	{object}		map[string]interface{} "Payment not found"
// @Failure		409	{object}		map[string]interface{} "Payment already succeeded"
// @Router		/payments/:id/succeed [POST]
func (h *Handler) MarkSucceeded(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}

	var req SucceedPaymentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.FromError(c, validator.BindingError(err))
			return
		}
	}

	p, err := h.service.MarkSucceeded(c.Request.Context(), actor, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": p})
}
