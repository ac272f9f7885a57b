package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/jwt"
)

const (
	// SessionCookieName is the name of the dashboard session cookie
	SessionCookieName = "webinar_session"

	// SessionContextKey is the key used to store the session in the gin context
	SessionContextKey = "user_session"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// UserSessionMiddleware validates the JWT session cookie and adds the session to context.
// Requests without a valid session are rejected with 401.
func UserSessionMiddleware(tokenManager *jwt.TokenManager, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			_ = c.Error(fmt.Errorf("missing session cookie")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			c.Abort()
			return
		}

		session, err := sessionFromToken(tokenManager, cookie)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck

			// Clear invalid cookie
			clearSessionCookie(c, cookieDomain, cookieSecure)

			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Session expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// OptionalUserSession adds the session to context when a valid cookie is present
// and never rejects the request. Public pages use it for owner previews.
func OptionalUserSession(tokenManager *jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenManager != nil {
			if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
				if session, err := sessionFromToken(tokenManager, cookie); err == nil {
					c.Set(SessionContextKey, session)
				}
			}
		}
		c.Next()
	}
}

func sessionFromToken(tokenManager *jwt.TokenManager, token string) (*models.UserSession, error) {
	claims, err := tokenManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	session := &models.UserSession{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Unix()
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Unix()
	}
	return session, nil
}

// GetUserSession extracts the session from context
func GetUserSession(c *gin.Context) (*models.UserSession, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.UserSession)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}

// SetSessionCookie sets the dashboard session cookie
func SetSessionCookie(c *gin.Context, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		ttlSeconds,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie clears the dashboard session cookie
func ClearSessionCookie(c *gin.Context, domain string, secure bool) {
	clearSessionCookie(c, domain, secure)
}

func clearSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}
