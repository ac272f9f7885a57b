package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRefineHandler_Refine(t *testing.T) {
	service := new(MockRefineService)
	handler := NewRefineHandler(service)
	router := gin.New()
	router.POST("/refine", handler.Refine)

	service.On("Refine", mock.Anything, mock.MatchedBy(func(req *models.RefineRequest) bool {
		return req.BlockType == "heroTitle" && req.UserInstructions == "更有力"
	})).Return(&models.RefineResponse{Success: true, RefinedContent: "立即報名"}, nil)

	w := serve(router, http.MethodPost, "/refine",
		`{"blockType":"heroTitle","currentContent":"報名","userInstructions":"更有力","pageContext":"webinar"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"refinedContent":"立即報名"}`, w.Body.String())
	service.AssertExpectations(t)
}

func TestRefineHandler_MissingFields(t *testing.T) {
	service := new(MockRefineService)
	handler := NewRefineHandler(service)
	router := gin.New()
	router.POST("/refine", handler.Refine)

	w := serve(router, http.MethodPost, "/refine", `{"blockType":"heroTitle"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CurrentContent is required")
	service.AssertNotCalled(t, "Refine", mock.Anything, mock.Anything)
}

func TestRefineHandler_UpstreamFailureIsGeneric(t *testing.T) {
	service := new(MockRefineService)
	handler := NewRefineHandler(service)
	router := gin.New()
	router.POST("/refine", handler.Refine)

	service.On("Refine", mock.Anything, mock.Anything).
		Return(nil, pkgerrors.UpstreamError("completion api", assert.AnError))

	w := serve(router, http.MethodPost, "/refine",
		`{"blockType":"faq","currentContent":"Q","userInstructions":"shorter"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to refine content"}`, w.Body.String())
}
