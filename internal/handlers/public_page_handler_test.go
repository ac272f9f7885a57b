package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const renderedDocument = "<!DOCTYPE html><html><body>page</body></html>"

func newPublicRouter(service *MockLandingPageService, viewerID string) *gin.Engine {
	handler := NewPublicPageHandler(service)
	router := gin.New()
	if viewerID != "" {
		router.Use(withSession(viewerID))
	}
	router.GET("/p/:id", handler.Show)
	return router
}

func TestPublicPageHandler_ServesDocument(t *testing.T) {
	service := new(MockLandingPageService)
	service.On("RenderPublic", mock.Anything, testPageID, "").Return(renderedDocument, nil)

	w := serve(newPublicRouter(service, ""), http.MethodGet, "/p/"+testPageID, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Cache-Control"))
	assert.Equal(t, renderedDocument, w.Body.String())
	service.AssertExpectations(t)
}

func TestPublicPageHandler_OwnerPreviewIsNotCached(t *testing.T) {
	service := new(MockLandingPageService)
	service.On("RenderPublic", mock.Anything, testPageID, testUserID).Return(renderedDocument, nil)

	w := serve(newPublicRouter(service, testUserID), http.MethodGet, "/p/"+testPageID, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
	service.AssertExpectations(t)
}

func TestPublicPageHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
	}{
		{"unpublished or missing", pkgerrors.NotFoundError("landing page"), http.StatusNotFound, "找不到頁面"},
		{"database", errors.New("timeout"), http.StatusInternalServerError, "發生錯誤"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockLandingPageService)
			service.On("RenderPublic", mock.Anything, "missing", "").Return("", tt.err)

			w := serve(newPublicRouter(service, ""), http.MethodGet, "/p/missing", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), tt.wantText)
			assert.NotContains(t, w.Body.String(), "timeout")
		})
	}
}
