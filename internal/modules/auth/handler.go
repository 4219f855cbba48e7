package auth

import (
	"errors"
	"io"
	"net/http"

	"designmarket/internal/middleware"
	"designmarket/internal/pkg/response"
	"designmarket/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/signup", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/users/me", h.GetMe)
}

// Register creates a client or designer account and returns a token pair.
// @Summary		Register an account
// @Description	Creates a client or designer account. /auth/signup is an alias.
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"username, email, password, role (client or designer), first_name, last_name"
// @Success		201	{object}		map[string]interface{} "Account created, token pair returned"
// @Failure		400	{object}		map[string]interface{} "Validation error"
// @Failure		409	{object}		map[string]interface{} "Username or email already registered"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// Login exchanges credentials for an access and refresh token.
// @Summary		Log in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"username, password"
// @Success		200	{object}		map[string]interface{} "Token pair"
// @Failure		400	{object}		map[string]interface{} "Validation error"
// @Failure		401	{object}		map[string]interface{} "Invalid username or password"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// Refresh issues a new access token for a valid refresh token.
// @Summary		Refresh tokens
// @Tags		Auth
// @Param		request	body	RefreshRequest	true	"refresh token"
// @Success		200	{object}		map[string]interface{} "New access token"
// @Failure		400	{object}		map[string]interface{} "Validation error"
// @Failure		401	{object}		map[string]interface{} "Refresh token invalid, expired or revoked"
// @Router		/auth/refresh [POST]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	access, err := h.service.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"access": access})
}

// Logout revokes the current access token and, when given, a refresh token.
// @Summary		Log out
// @Tags		Auth
// @Security	BearerAuth
// @Param		request	body	LogoutRequest	false	"optional refresh token"
// @Success		200	{object}		map[string]interface{} "Logged out"
// @Failure		400	{object}		map[string]interface{} "Validation error"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Router		/auth/logout [POST]
func (h *Handler) Logout(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	// body is optional
	var req LogoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.FromError(c, validator.BindingError(err))
			return
		}
	}

	jti, exp := middleware.TokenID(c)
	if err := h.service.Logout(c.Request.Context(), actor, jti, exp, req.Refresh); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// GetMe returns the authenticated user.
// @Summary		Current user
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "User profile"
// @Failure		401	{object}		map[string]interface{} "Authentication required"
// @Router		/users/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.Me(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
