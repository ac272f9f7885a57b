package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/services"
)

type RefineHandler struct {
	service services.RefineServiceInterface
}

func NewRefineHandler(service services.RefineServiceInterface) *RefineHandler {
	return &RefineHandler{
		service: service,
	}
}

// Refine handles POST /api/v1/refine
func (h *RefineHandler) Refine(c *gin.Context) {
	var req models.RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.Refine(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to refine content")
		return
	}

	c.JSON(http.StatusOK, resp)
}
