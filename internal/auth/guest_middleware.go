package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/backend/pkg/jwt"
)

// GuestMiddleware rejects requests that already carry a valid token.
// Signup is only available to unauthenticated callers.
func GuestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if _, _, err := jwt.ParseToken(tokenString); err == nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Already authenticated"})
				return
			}
		}
		c.Next()
	}
}
