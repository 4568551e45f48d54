package auth

import (
	"github.com/gin-gonic/gin"

	"microblog/backend/internal/cache"
	"microblog/backend/pkg/jwt"
)

// OptionalAuthMiddleware inspects for a token and sets the userID if present and valid,
// but does not fail if the token is missing, invalid or revoked. Public read
// endpoints use it so projections can compute viewer-specific fields like
// is_liked and is_following.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			revoked, err := cache.Store.IsTokenRevoked(c.Request.Context(), tokenString)
			if err != nil || !revoked {
				if userID, _, err := jwt.ParseToken(tokenString); err == nil {
					c.Set("userID", userID)
				}
			}
		}
		c.Next()
	}
}
