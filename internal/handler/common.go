package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// DetailResponse carries a human-readable outcome message.
type DetailResponse struct {
	Detail string `json:"detail" example:"alice followed!"`
}

// currentUserID returns the authenticated user's ID from the request context.
// The boolean is false on anonymous requests (optional-auth routes).
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint)
	return userID, ok
}

// requireOwner aborts the request unless the actor owns the resource.
// Ownership is always a direct identity comparison, there are no roles.
func requireOwner(c *gin.Context, ownerID uint) bool {
	actorID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return false
	}
	if actorID != ownerID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to modify this resource"})
		return false
	}
	return true
}
