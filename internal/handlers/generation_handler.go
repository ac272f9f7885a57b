package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/services"
)

const (
	multipartMemory = 32 << 20
	photosField     = "photos"
)

// GenerationHandler handles landing page generation endpoints
type GenerationHandler struct {
	service       services.GenerationServiceInterface
	maxPhotoBytes int64
}

// NewGenerationHandler creates a new GenerationHandler. Photo parts are read up
// to one byte past maxPhotoBytes so oversize files still fail validation.
func NewGenerationHandler(service services.GenerationServiceInterface, maxPhotoBytes int64) *GenerationHandler {
	return &GenerationHandler{
		service:       service,
		maxPhotoBytes: maxPhotoBytes,
	}
}

// Generate handles POST /api/v1/generate
// Accepts the multi-step form as multipart; a plain JSON body works too.
func (h *GenerationHandler) Generate(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	var (
		req    models.GenerationRequest
		photos []models.UploadedPhoto
	)

	if c.ContentType() == gin.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	} else {
		form, err := c.MultipartForm()
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid multipart form", err)
			return
		}
		req = generationRequestFromForm(form.Value)
		photos, err = h.readPhotos(form.File[photosField])
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to read uploaded photos", err)
			return
		}
	}

	page, err := h.service.Generate(c.Request.Context(), userID, &req, photos)
	if err != nil {
		respondServiceError(c, err, "Failed to generate landing page")
		return
	}

	c.JSON(http.StatusOK, models.GenerateResponse{
		Success:     true,
		LandingPage: page.Summary(),
	})
}

// Regenerate handles POST /api/v1/pages/:id/regenerate
func (h *GenerationHandler) Regenerate(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	page, err := h.service.Regenerate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to regenerate landing page")
		return
	}

	c.JSON(http.StatusOK, models.GenerateResponse{
		Success:     true,
		LandingPage: page.Summary(),
	})
}

func (h *GenerationHandler) readPhotos(files []*multipart.FileHeader) ([]models.UploadedPhoto, error) {
	photos := make([]models.UploadedPhoto, 0, len(files))
	for _, fh := range files {
		data, err := h.readPart(fh)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		photos = append(photos, models.UploadedPhoto{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return photos, nil
}

func (h *GenerationHandler) readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if h.maxPhotoBytes > 0 {
		r = io.LimitReader(f, h.maxPhotoBytes+1)
	}
	return io.ReadAll(r)
}

// generationRequestFromForm maps multipart values onto the request. The form
// client JSON-encodes every field; plain values are accepted as well.
func generationRequestFromForm(values map[string][]string) models.GenerationRequest {
	text := func(name string) string {
		return decodeFormText(firstValue(values, name))
	}
	list := func(name string) []string {
		return decodeFormList(values[name])
	}

	return models.GenerationRequest{
		BusinessInfo:          text("businessInfo"),
		WebinarContent:        text("webinarContent"),
		TargetAudience:        text("targetAudience"),
		WebinarInfo:           text("webinarInfo"),
		InstructorCredentials: text("instructorCredentials"),
		ContactFields:         list("contactFields"),
		VisualStyle:           text("visualStyle"),
		BrandColors:           list("brandColors"),
		UniqueSellingPoints:   text("uniqueSellingPoints"),
		UpsellProducts:        text("upsellProducts"),
		SpecialRequirements:   text("specialRequirements"),
	}
}

func firstValue(values map[string][]string, name string) string {
	if v := values[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// decodeFormText unwraps a JSON string. JSON objects and arrays are kept as
// their compact JSON text; anything else is taken verbatim.
func decodeFormText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		return strings.TrimSpace(s)
	}

	if raw[0] == '{' || raw[0] == '[' {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			if out, err := json.Marshal(v); err == nil {
				return string(out)
			}
		}
	}
	return raw
}

// decodeFormList accepts repeated fields, JSON arrays and comma separated text.
func decodeFormList(raws []string) []string {
	var out []string
	for _, raw := range raws {
		out = append(out, decodeListValue(raw)...)
	}
	return out
}

func decodeListValue(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		raw = s
	}
	return splitListText(raw)
}

func splitListText(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '，' || r == '、' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
