package middleware

import (
	"net/http"
	"strings"

	"github.com/CareLoop-AI/CareLoopAI/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates a route group on a valid Bearer token and stashes the
// authenticated identity in the gin context.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			return
		}

		username, userID, err := authService.ParseAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("username", username)
		c.Set("user_id", userID)
		c.Next()
	}
}
