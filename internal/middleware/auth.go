package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"go.uber.org/zap"
)

// MetricsTokenHeader carries the scrape token for operational endpoints
const MetricsTokenHeader = "X-Metrics-Token"

// TokenAuthMiddleware requires one of validTokens in MetricsTokenHeader.
// With no configured tokens every request passes.
func TokenAuthMiddleware(validTokens ...string) gin.HandlerFunc {
	configured := make([]string, 0, len(validTokens))
	for _, token := range validTokens {
		if token != "" {
			configured = append(configured, token)
		}
	}

	return func(c *gin.Context) {
		if len(configured) == 0 {
			c.Next()
			return
		}

		token := c.GetHeader(MetricsTokenHeader)
		if token == "" {
			logger.Warn("Missing authentication token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token"})
			c.Abort()
			return
		}

		valid := false
		for _, validToken := range configured {
			if subtle.ConstantTimeCompare([]byte(token), []byte(validToken)) == 1 {
				valid = true
				break
			}
		}

		if !valid {
			logger.Warn("Invalid authentication token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
