package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminOnly rejects requests whose token does not carry the admin flag.
// Must run after ValidateToken.
func AdminOnly(c *gin.Context) {
	isAdmin, exists := c.Get("is_admin")
	if !exists || isAdmin != true {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
		c.Abort()
		return
	}
	c.Next()
}
