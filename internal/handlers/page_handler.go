package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/services"
)

// PageHandler serves the dashboard page management endpoints
type PageHandler struct {
	service services.LandingPageServiceInterface
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(service services.LandingPageServiceInterface) *PageHandler {
	return &PageHandler{
		service: service,
	}
}

// List handles GET /api/v1/pages
func (h *PageHandler) List(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	var opts models.ListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), userID, opts)
	if err != nil {
		respondServiceError(c, err, "Failed to list landing pages")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/pages/:id
func (h *PageHandler) Get(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	page, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to load landing page")
		return
	}

	c.JSON(http.StatusOK, models.PageResponse{Success: true, Page: page})
}

// Update handles PUT /api/v1/pages/:id
func (h *PageHandler) Update(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	var req models.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to save landing page")
		return
	}

	c.JSON(http.StatusOK, models.PageResponse{Success: true, Page: page})
}

// Delete handles DELETE /api/v1/pages/:id
func (h *PageHandler) Delete(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete landing page")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Publish handles POST /api/v1/pages/:id/publish
func (h *PageHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish handles POST /api/v1/pages/:id/unpublish
func (h *PageHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *PageHandler) setPublished(c *gin.Context, published bool) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	page, err := h.service.SetPublished(c.Request.Context(), userID, c.Param("id"), published)
	if err != nil {
		respondServiceError(c, err, "Failed to change publish state")
		return
	}

	c.JSON(http.StatusOK, models.PageResponse{Success: true, Page: page})
}

// Submissions handles GET /api/v1/pages/:id/submissions
func (h *PageHandler) Submissions(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	submissions, err := h.service.Submissions(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to load submission history")
		return
	}

	if submissions == nil {
		submissions = []models.FormSubmission{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
	})
}
