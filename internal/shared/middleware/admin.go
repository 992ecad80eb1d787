package middleware

import (
	"github.com/gin-gonic/gin"

	"vocalhub-backend/internal/shared/response"
)

// RequireAdmin must run after Authenticate
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentActor(c).IsAdmin() {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
