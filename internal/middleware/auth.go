package middleware

import (
	"context"
	"net/http"
	"strings"

	"designmarket/internal/pkg/jwt"
	"designmarket/internal/pkg/logger"
	"designmarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth.
const (
	ContextUserID   = "user_id"
	ContextRole     = "role"
	ContextTokenID  = "jti"
	ContextTokenExp = "token_exp"
)

// RevocationChecker answers whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTAuth requires a valid, non-revoked access token in the Authorization header.
func JWTAuth(tokens *jwt.Service, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authentication required")
			c.Abort()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be a Bearer token")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(raw))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.FromContext(c.Request.Context()).Error("revocation lookup failed", "error", err.Error())
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				c.Abort()
				return
			}
			if isRevoked {
				response.Error(c, http.StatusUnauthorized, "TOKEN_REVOKED", "Token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExp, claims.ExpiresAt.Time)
		}

		ctx := logger.WithContext(c.Request.Context(),
			logger.FromContext(c.Request.Context()).With("user_id", claims.UserID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
