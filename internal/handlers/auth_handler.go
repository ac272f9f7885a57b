package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/middleware"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/services"
)

// AuthHandler handles dashboard authentication endpoints
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, token, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Registration is temporarily unavailable")
		return
	}

	h.setCookie(c, token)
	c.JSON(http.StatusCreated, models.AuthResponse{
		Success: true,
		Session: session,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Login is temporarily unavailable")
		return
	}

	h.setCookie(c, token)
	c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Session: session,
	})
}

// Logout handles POST /api/v1/auth/logout
// Clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(
		c,
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.LogoutResponse{
		Success: true,
	})
}

// GetSession handles GET /api/v1/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Session: session,
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, token string) {
	middleware.SetSessionCookie(
		c,
		token,
		h.service.GetSessionTTL(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)
}
