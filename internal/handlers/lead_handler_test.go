package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLeadRouter(service *MockLeadService) *gin.Engine {
	handler := NewLeadHandler(service)
	router := gin.New()
	router.POST("/api/leads", handler.Create)
	router.POST("/api/v1/leads", handler.Create)

	authed := router.Group("/api/v1", withSession(testUserID))
	authed.GET("/pages/:id/leads", handler.ListByPage)
	authed.PATCH("/leads/:id/status", handler.UpdateStatus)
	return router
}

func TestLeadHandler_Create_Success(t *testing.T) {
	service := new(MockLeadService)
	router := newLeadRouter(service)

	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	service.On("CreateLead", mock.Anything, mock.MatchedBy(func(req *models.CreateLeadRequest) bool {
		return req.PageID == testPageID && req.Name == "" && req.Email == "visitor@example.com" &&
			string(req.AdditionalInfo) == `{"source":"ig"}`
	})).Return(&models.CreateLeadResponse{
		Success: true,
		Data: &models.LeadData{
			ID:        testLeadID,
			PageID:    testPageID,
			Email:     "visitor@example.com",
			CreatedAt: created,
		},
	}, nil).Twice()

	body := `{"pageId":"` + testPageID + `","name":"","email":"visitor@example.com","phone":"","additionalInfo":{"source":"ig"}}`
	for _, path := range []string{"/api/leads", "/api/v1/leads"} {
		w := serve(router, http.MethodPost, path, body)

		assert.Equal(t, http.StatusOK, w.Code, path)
		var resp models.CreateLeadResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, testLeadID, resp.Data.ID)
		assert.Equal(t, created, resp.Data.CreatedAt)
	}
	service.AssertExpectations(t)
}

func TestLeadHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"malformed json", `{"pageId":`, nil, http.StatusBadRequest},
		{"missing page id", `{"name":"x"}`, pkgerrors.InvalidInputError("pageId", "is required"), http.StatusBadRequest},
		{"unknown page", `{"pageId":"` + testPageID + `"}`, pkgerrors.NotFoundError("landing page"), http.StatusNotFound},
		{"database down", `{"pageId":"` + testPageID + `"}`, errors.New("pool closed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockLeadService)
			router := newLeadRouter(service)
			if tt.err != nil {
				service.On("CreateLead", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			w := serve(router, http.MethodPost, "/api/leads", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestLeadHandler_ListByPage(t *testing.T) {
	service := new(MockLeadService)
	router := newLeadRouter(service)

	service.On("ListLeads", mock.Anything, testUserID, testPageID, models.ListOptions{Limit: 2}).
		Return(&models.LeadListResponse{
			Success: true,
			Leads:   []models.Lead{{ID: testLeadID, LandingPageID: testPageID, Status: models.LeadStatusNew}},
			Total:   1,
		}, nil)

	w := serve(router, http.MethodGet, "/api/v1/pages/"+testPageID+"/leads?limit=2", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.LeadListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, models.LeadStatusNew, resp.Leads[0].Status)
	service.AssertExpectations(t)
}

func TestLeadHandler_ListByPage_Forbidden(t *testing.T) {
	service := new(MockLeadService)
	router := newLeadRouter(service)
	service.On("ListLeads", mock.Anything, testUserID, testPageID, mock.Anything).
		Return(nil, pkgerrors.AccessDeniedError("landing page belongs to another user"))

	w := serve(router, http.MethodGet, "/api/v1/pages/"+testPageID+"/leads", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLeadHandler_UpdateStatus(t *testing.T) {
	service := new(MockLeadService)
	router := newLeadRouter(service)
	service.On("UpdateStatus", mock.Anything, testUserID, testLeadID, models.LeadStatusContacted).
		Return(&models.Lead{ID: testLeadID, Status: models.LeadStatusContacted}, nil)

	w := serve(router, http.MethodPatch, "/api/v1/leads/"+testLeadID+"/status", `{"status":"contacted"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"contacted"`)
	service.AssertExpectations(t)
}

func TestLeadHandler_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	service := new(MockLeadService)
	router := newLeadRouter(service)

	w := serve(router, http.MethodPatch, "/api/v1/leads/"+testLeadID+"/status", `{"status":"won"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Status must be one of")
	service.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
