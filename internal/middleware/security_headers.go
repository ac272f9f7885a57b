package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// PublicPagePrefix is the path prefix of published landing pages
const PublicPagePrefix = "/p/"

// SecurityHeadersMiddleware adds security headers to all HTTP responses.
// Published landing pages run their own inline scripts and styles and may be
// cached briefly; API responses are never cached.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), interest-cohort=()")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")

		if strings.HasPrefix(c.Request.URL.Path, PublicPagePrefix) {
			c.Header("X-Frame-Options", "SAMEORIGIN")
			c.Header("Content-Security-Policy",
				"default-src 'self'; img-src 'self' data: https:; style-src 'self' 'unsafe-inline' https:; "+
					"script-src 'self' 'unsafe-inline'; connect-src 'self'; font-src 'self' https: data:; frame-ancestors 'self'")
			c.Header("Cache-Control", "public, max-age=60")
		} else {
			c.Header("X-Frame-Options", "DENY")
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
			c.Header("Pragma", "no-cache")
		}

		c.Next()
	}
}
