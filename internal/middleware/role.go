package middleware

import (
	"time"

	"designmarket/internal/domain"

	"github.com/gin-gonic/gin"
)

// Actor returns the authenticated caller stored by JWTAuth.
func Actor(c *gin.Context) (domain.Actor, bool) {
	userID := c.GetInt64(ContextUserID)
	role := c.GetString(ContextRole)
	if userID == 0 || role == "" {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, Role: domain.UserRole(role)}, true
}

// TokenID returns the id and expiry of the access token used for this request.
func TokenID(c *gin.Context) (string, time.Time) {
	return c.GetString(ContextTokenID), c.GetTime(ContextTokenExp)
}
