package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resort-backend/utils"
)

// RequireAdmin validates the Authorization bearer token on protected routes
// and stores the admin id in the context.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		adminID, err := utils.ParseAdminToken(strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		c.Set("adminID", adminID)
		c.Next()
	}
}
