package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// RequireUser rejects requests without an X-User-ID header. The header
// is trusted; authentication happens upstream.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-User-ID")
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
