package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"microblog/backend/internal/cache"
	"microblog/backend/pkg/jwt"
)

// AuthMiddleware requires a valid, non-revoked bearer token and stores the
// authenticated user's ID (plus the raw token, for logout) in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header with Bearer token required"})
			return
		}

		if revoked, err := cache.Store.IsTokenRevoked(c.Request.Context(), tokenString); err == nil && revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		userID, expiresAt, err := jwt.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", userID)
		c.Set("token", tokenString)
		c.Set("tokenExpiresAt", expiresAt)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
