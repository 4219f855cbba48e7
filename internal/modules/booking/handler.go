package booking

import (
	"context"
	"net/http"

	"designmarket/internal/domain"
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
	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.ListBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.POST("/:id/confirm", h.ConfirmBooking)
		bookings.POST("/:id/complete", h.CompleteBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}

// CreateBooking books a design for the calling client and notifies the designer.
// @Summary		Create booking
// @Description	The negotiated price defaults to the design price and must have at most 2 decimal places.
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"design_id, booking_date, negotiated_price, notes"
// @Success		201	{object}		map[string]interface{} "Booking created in pending status"
// @Failure		400	{object}		map[string]interface{} "Validation error"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Client role required"
// @Failure		404	{object}		map[string]interface{} "Design not found"
// @Router		/bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

// ListBookings returns the caller's bookings: clients see their own, designers see bookings of their designs.
// @Summary		List bookings
// @Tags		Bookings
// @Security	BearerAuth
// @Param		status	query	string	false	"pending, confirmed, completed or cancelled"
// @Param		limit	query	int	false	"Page size (default 20, max 100)"
// @Param		offset	query	int	false	"Rows to skip"
// @Success		200	{object}		map[string]interface{} "Bookings page"
// @Failure		400	{object}		map[string]interface{} "Unknown status"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Router		/bookings [GET]
func (h *Handler) ListBookings(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	page := utils.PageFromQuery(c)
	status := domain.BookingStatus(c.Query("status"))

	bookings, err := h.service.ListBookings(c.Request.Context(), actor, status, page)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bookings": bookings,
		"limit":    page.Limit,
		"offset":   page.Offset,
	})
}

// GetBooking returns one booking visible to the caller.
// @Summary		Get booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Success		200	{object}		map[string]interface{} "Booking"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Not a party to the booking"
// @Failure		404	{object}		map[string]interface{} "Booking not found"
// @Router		/bookings/:id [GET]
func (h *Handler) GetBooking(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// UpdateBooking edits a pending booking.
// @Summary		Update booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Param		request	body	UpdateBookingRequest	true	"booking_date, negotiated_price, notes"
// @Success		200	{object}		map[string]interface{} "Booking updated"
// @Failure		400	{object}		map[string]interface{} "Validation error or booking no longer pending"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Not a party to the booking"
// @Failure		404	{object}		map[string]interface{} "Booking not found"
// @Failure		409	{object}		map[string]interface{} "Booking changed concurrently"
// @Router		/bookings/:id [PATCH]
func (h *Handler) UpdateBooking(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), actor, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// ConfirmBooking moves a pending booking to confirmed. Designer only.
// @Summary		Confirm booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Success		200	{object}		map[string]interface{} "Booking confirmed"
// @Failure		400	{object}		map[string]interface{} "Transition not allowed"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Not the designer"
// @Failure		404	{object}		map[string]interface{} "Booking not found"
// @Failure		409	{object}		map[string]interface{} "Booking changed concurrently"
// @Router		/bookings/:id/confirm [POST]
func (h *Handler) ConfirmBooking(c *gin.Context) {
	h.changeStatus(c, h.service.ConfirmBooking)
}

// CompleteBooking moves a confirmed booking to completed.
// @Summary		Complete booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Success		200	{object}		map[string]interface{} "Booking completed"
// @Failure		400	{object}		map[string]interface{} "Transition not allowed"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Not the designer"
// @Failure		409	{object}		map[string]interface{} "Booking changed concurrently"
// @Router		/bookings/:id/complete [POST]
func (h *Handler) CompleteBooking(c *gin.Context) {
	h.changeStatus(c, h.service.CompleteBooking)
}

// CancelBooking cancels a pending or confirmed booking. Once confirmed, only the designer may cancel.
// @Summary		Cancel booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Success		200	{object}		map[string]interface{} "Booking cancelled"
// @Failure		400	{object}		map[string]interface{} "Transition not allowed"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Not a party, or client cancelling a confirmed booking"
// @Failure		409	{object}		map[string]interface{} "Booking changed concurrently"
// @Router		/bookings/:id/cancel [POST]
func (h *Handler) CancelBooking(c *gin.Context) {
	h.changeStatus(c, h.service.CancelBooking)
}

type statusChange func(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error)

func (h *Handler) changeStatus(c *gin.Context, change statusChange) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	b, err := change(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// actorAndID writes the error response itself when it returns false.
func actorAndID(c *gin.Context) (domain.Actor, int64, bool) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return domain.Actor{}, 0, false
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return domain.Actor{}, 0, false
	}
	return actor, id, true
}
