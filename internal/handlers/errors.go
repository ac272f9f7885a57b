package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/middleware"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"success": false, "error": message, "details": details})
}

// respondServiceError maps a service error to its HTTP status. Client errors
// carry their own message; server errors are reported as internalMessage.
func respondServiceError(c *gin.Context, err error, internalMessage string) {
	status := pkgerrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		respondError(c, status, internalMessage, err)
		return
	}
	respondError(c, status, err.Error(), err)
}

// sessionUserID returns the authenticated user, responding 401 when there is none
func sessionUserID(c *gin.Context) (string, bool) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return "", false
	}
	return session.UserID, true
}
