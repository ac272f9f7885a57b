package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodySizeLimitMiddleware limits the size of request bodies.
// Requests that declare a larger Content-Length are rejected before the handler runs;
// others fail while reading once the limit is crossed.
func BodySizeLimitMiddleware(maxBodySize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBodySize {
			_ = c.Error(fmt.Errorf("request body of %d bytes exceeds %d", c.Request.ContentLength, maxBodySize)) //nolint:errcheck
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": "Request body too large"})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
		c.Next()
	}
}
