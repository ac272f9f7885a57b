package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/services"
)

// LeadHandler handles lead capture and the dashboard lead views
type LeadHandler struct {
	service services.LeadServiceInterface
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(service services.LeadServiceInterface) *LeadHandler {
	return &LeadHandler{
		service: service,
	}
}

// Create handles POST /api/leads
// Called by published landing pages, so it needs no session.
func (h *LeadHandler) Create(c *gin.Context) {
	var req models.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.CreateLead(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to save lead")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListByPage handles GET /api/v1/pages/:id/leads
func (h *LeadHandler) ListByPage(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	var opts models.ListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.ListLeads(c.Request.Context(), userID, c.Param("id"), opts)
	if err != nil {
		respondServiceError(c, err, "Failed to list leads")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateStatus handles PATCH /api/v1/leads/:id/status
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	var req models.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lead, err := h.service.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update lead")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"lead":    lead,
	})
}
