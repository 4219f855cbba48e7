package catalog

import (
	"net/http"
	"strings"

	"designmarket/internal/middleware"
	"designmarket/internal/pkg/response"
	"designmarket/internal/pkg/utils"
	"designmarket/internal/pkg/validator"
	"designmarket/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers public catalog routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	designs := r.Group("/designs")
	{
		designs.GET("", h.ListDesigns)    // GET /api/v1/designs?designer_id=...&q=...
		designs.GET("/:id", h.GetDesign) // GET /api/v1/designs/:id
	}
	r.GET("/designers/:id", h.GetDesigner)
}

// RegisterProtectedRoutes registers catalog routes that require authentication
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/designs", h.CreateDesign)
	r.PUT("/designs/:id", h.UpdateDesign)
	r.DELETE("/designs/:id", h.DeleteDesign)
	r.PUT("/designers/me", h.UpdateMyProfile)
}

// ListDesigns returns published designs, newest first.
// @Summary		List designs
// @Description	Public. Search terms are matched literally, % and _ are not wildcards.
// @Tags		Catalog
// @Param		designer_id	query	int	false	"Filter by designer"
// @Param		q	query	string	false	"Case-insensitive search in title and description"
// @Param		limit	query	int	false	"Page size (default 20, max 100)"
// @Param		offset	query	int	false	"Rows to skip"
// @Success		200	{object}		map[string]interface{} "Designs page"
// @Failure		400	{object}		map[string]interface{} "Invalid designer ID"
// @Router		/designs [GET]
func (h *Handler) ListDesigns(c *gin.Context) {
	var f repository.DesignFilter
	if raw := c.Query("designer_id"); raw != "" {
		id, ok := utils.ParseID(raw)
		if !ok {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid designer ID")
			return
		}
		f.DesignerID = id
	}
	f.Query = strings.TrimSpace(c.Query("q"))

	page := utils.PageFromQuery(c)
	designs, err := h.service.ListDesigns(c.Request.Context(), f, page)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"designs": designs,
		"limit":   page.Limit,
		"offset":  page.Offset,
	})
}

// GetDesign returns one design.
// @Summary		Get design
// @Tags		Catalog
// @Param		id	path	int	true	"Design ID"
// @Success		200	{object}		map[string]interface{} "Design"
// @Failure		400	{object}		map[string]interface{} "Invalid design ID"
// @Failure		404	{object}		map[string]interface{} "Design not found"
// @Router		/designs/:id [GET]
func (h *Handler) GetDesign(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid design ID")
		return
	}

	d, err := h.service.GetDesign(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"design": d})
}

// CreateDesign publishes a design owned by the calling designer.
// @Summary		Create design
// @Tags		Catalog
// @Security	BearerAuth
// @Param		request	body	DesignRequest	true	"title, description, features, price, image_url"
// @Success		201	{object}		map[string]interface{} "Design created"
// @Failure		400	{object}		map[string]interface{} "Validation error: price must be positive with at most 2 decimal places"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Designer role required"
// @Router		/designs [POST]
func (h *Handler) CreateDesign(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req DesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	d, err := h.service.CreateDesign(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"design": d})
}

// UpdateDesign replaces a design's fields. Only the owner may call it.
// @Summary		Update design
// @Tags		Catalog
// @Security	BearerAuth
// @Param		id	path	int	true	"Design ID"
// @Param		request	body	DesignRequest	true	"title, description, features, price, image_url"
// @Success		200	{object}		map[string]interface{} "Design updated"
// @Failure		400	{object}		map[string]interface{} "Validation error"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Not the owner"
// @Failure		404	{object}		map[string]interface{} "Design not found"
// @Router		/designs/:id [PUT]
func (h *Handler) UpdateDesign(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid design ID")
		return
	}

	var req DesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	d, err := h.service.UpdateDesign(c.Request.Context(), actor, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"design": d})
}

// DeleteDesign removes a design together with its bookings, their payments and its messages.
// @Summary		Delete design
// @Tags		Catalog
// @Security	BearerAuth
// @Param		id	path	int	true	"Design ID"
// @Success		200	{object}		map[string]interface{} "Design deleted"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Not the owner"
// @Failure		404	{object}		map[string]interface{} "Design not found"
// @Router		/designs/:id [DELETE]
func (h *Handler) DeleteDesign(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid design ID")
		return
	}

	if err := h.service.DeleteDesign(c.Request.Context(), actor, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// GetDesigner returns a designer's public profile.
// @Summary		Get designer
// @Tags		Catalog
// @Param		id	path	int	true	"Designer ID"
// @Success		200	{object}		map[string]interface{} "Designer profile"
// @Failure		400	{object}		map[string]interface{} "Invalid designer ID"
// @Failure		404	{object}		map[string]interface{} "Designer not found"
// @Router		/designers/:id [GET]
func (h *Handler) GetDesigner(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid designer ID")
		return
	}

	p, err := h.service.GetDesigner(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"designer": p})
}

// UpdateMyProfile edits the calling designer's profile.
// @Summary		Update own designer profile
// @Tags		Catalog
// @Security	BearerAuth
// @Param		request	body	UpdateProfileRequest	true	"bio, phone_number, company_name"
// @Success		200	{object}		map[string]interface{} "Profile updated"
// @Failure		400	{object}		map[string]interface{} "Validation error"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Failure		403	{object}		map[string]interface{} "Designer role required"
// @Router		/designers/me [PUT]
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	p, err := h.service.UpdateMyProfile(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"designer": p})
}
