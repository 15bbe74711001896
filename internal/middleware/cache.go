package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoStore keeps browsers from caching per-session pages, so the back button
// never shows a stale question or an admin page after logout.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
