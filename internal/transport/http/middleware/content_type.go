package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects non-GET requests that do not carry a JSON body before
// they reach any handler.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodDelete:
			c.Next()
			return
		}

		contentType := c.ContentType()
		if !strings.EqualFold(contentType, "application/json") {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message": "400: Malformed request",
			})
			return
		}

		c.Next()
	}
}
