package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminToken guards admin endpoints with a static shared token carried as
// an Authorization bearer token or in the X-Admin-Token header. With no
// token configured the endpoints are disabled outright rather than left
// open.
func AdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   gin.H{"code": "ADMIN_DISABLED", "message": "admin endpoints are not configured"},
			})
			return
		}

		provided := extractAdminToken(c)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "ADMIN_REQUIRED", "message": "admin authentication required"},
			})
			return
		}

		c.Next()
	}
}

func extractAdminToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return c.GetHeader("X-Admin-Token")
}
