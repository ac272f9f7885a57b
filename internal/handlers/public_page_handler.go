package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/middleware"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/services"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
)

const htmlContentType = "text/html; charset=utf-8"

const notFoundDocument = `<!DOCTYPE html>
<html lang="zh-Hant"><head><meta charset="utf-8"><title>找不到頁面</title></head>
<body><h1>找不到頁面</h1><p>這個頁面不存在或尚未發佈。</p></body></html>
`

const errorDocument = `<!DOCTYPE html>
<html lang="zh-Hant"><head><meta charset="utf-8"><title>發生錯誤</title></head>
<body><h1>發生錯誤</h1><p>請稍後再試。</p></body></html>
`

// PublicPageHandler serves rendered landing pages to visitors
type PublicPageHandler struct {
	service services.LandingPageServiceInterface
}

// NewPublicPageHandler creates a new PublicPageHandler
func NewPublicPageHandler(service services.LandingPageServiceInterface) *PublicPageHandler {
	return &PublicPageHandler{
		service: service,
	}
}

// Show handles GET /p/:id
// Owners may preview their unpublished pages; everyone else gets 404.
func (h *PublicPageHandler) Show(c *gin.Context) {
	viewerID := ""
	if session, err := middleware.GetUserSession(c); err == nil {
		viewerID = session.UserID
	}

	document, err := h.service.RenderPublic(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		attachError(c, err)
		if pkgerrors.Is(err, pkgerrors.ErrNotFound) {
			c.Data(http.StatusNotFound, htmlContentType, []byte(notFoundDocument))
			return
		}
		c.Data(http.StatusInternalServerError, htmlContentType, []byte(errorDocument))
		return
	}

	if viewerID != "" {
		c.Header("Cache-Control", "private, no-store")
	}
	c.Data(http.StatusOK, htmlContentType, []byte(document))
}
