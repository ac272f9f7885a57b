package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type formPhoto struct {
	name        string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, photos []formPhoto) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for _, photo := range photos {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="photos"; filename="`+photo.name+`"`)
		header.Set("Content-Type", photo.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(photo.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func newGenerationRouter(service *MockGenerationService, maxPhotoBytes int64) *gin.Engine {
	handler := NewGenerationHandler(service, maxPhotoBytes)
	router := gin.New()
	router.POST("/generate", withSession(testUserID), handler.Generate)
	router.POST("/anonymous/generate", handler.Generate)
	router.POST("/pages/:id/regenerate", withSession(testUserID), handler.Regenerate)
	return router
}

func generatedPage() *models.LandingPage {
	return &models.LandingPage{
		ID:              testPageID,
		Title:           "Acme 招生研討會",
		MetaDescription: "免費學習社群招生",
		HTML:            "<main></main>",
		CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestGenerationHandler_Generate_Multipart(t *testing.T) {
	service := new(MockGenerationService)
	router := newGenerationRouter(service, 1024)

	fields := map[string]string{
		"businessInfo":          `"Acme 補習班"`,
		"webinarContent":        `"招生三步驟"`,
		"targetAudience":        "補習班老闆",
		"webinarInfo":           `{"date":"2026-03-10","platform":"Zoom"}`,
		"instructorCredentials": `"十年教學經驗"`,
		"contactFields":         `["姓名","電郵","IG"]`,
		"visualStyle":           `"科技感"`,
		"brandColors":           `"深藍 #1E40AF, 金 #f59e0b"`,
	}
	photos := []formPhoto{{name: "coach.png", contentType: "image/png", data: []byte("\x89PNG\r\n\x1a\nfake")}}

	service.On("Generate", mock.Anything, testUserID, mock.MatchedBy(func(req *models.GenerationRequest) bool {
		return req.BusinessInfo == "Acme 補習班" &&
			req.TargetAudience == "補習班老闆" &&
			req.WebinarInfo == `{"date":"2026-03-10","platform":"Zoom"}` &&
			assert.ObjectsAreEqual([]string{"姓名", "電郵", "IG"}, req.ContactFields) &&
			assert.ObjectsAreEqual([]string{"深藍 #1E40AF", "金 #f59e0b"}, req.BrandColors) &&
			req.VisualStyle == "科技感"
	}), mock.MatchedBy(func(photos []models.UploadedPhoto) bool {
		return len(photos) == 1 && photos[0].FileName == "coach.png" && photos[0].ContentType == "image/png"
	})).Return(generatedPage(), nil)

	body, contentType := multipartBody(t, fields, photos)
	req := httptest.NewRequest(http.MethodPost, "/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.LandingPage)
	assert.Equal(t, testPageID, resp.LandingPage.ID)
	assert.Equal(t, "Acme 招生研討會", resp.LandingPage.Title)
	assert.NotContains(t, w.Body.String(), "<main>")
	service.AssertExpectations(t)
}

func TestGenerationHandler_Generate_JSONBody(t *testing.T) {
	service := new(MockGenerationService)
	router := newGenerationRouter(service, 1024)

	service.On("Generate", mock.Anything, testUserID, mock.MatchedBy(func(req *models.GenerationRequest) bool {
		return req.BusinessInfo == "Acme" && len(req.ContactFields) == 1
	}), []models.UploadedPhoto(nil)).Return(generatedPage(), nil)

	w := serve(router, http.MethodPost, "/generate", `{"businessInfo":"Acme","contactFields":["email"]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestGenerationHandler_Generate_OversizePhotoTruncatedForValidation(t *testing.T) {
	service := new(MockGenerationService)
	router := newGenerationRouter(service, 4)

	service.On("Generate", mock.Anything, testUserID, mock.Anything, mock.MatchedBy(func(photos []models.UploadedPhoto) bool {
		return len(photos) == 1 && len(photos[0].Data) == 5
	})).Return(nil, pkgerrors.InvalidInputError("photos", "file exceeds maximum size"))

	body, contentType := multipartBody(t, map[string]string{"businessInfo": "x"},
		[]formPhoto{{name: "big.jpg", contentType: "image/jpeg", data: bytes.Repeat([]byte{0xff}, 64)}})
	req := httptest.NewRequest(http.MethodPost, "/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "photos")
	service.AssertExpectations(t)
}

func TestGenerationHandler_Generate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"missing fields", pkgerrors.InvalidInputError("businessInfo", "is required"), http.StatusBadRequest, "businessInfo: is required: invalid input"},
		{"llm down", pkgerrors.UpstreamError("completion api", assert.AnError), http.StatusInternalServerError, "Failed to generate landing page"},
		{"database", assert.AnError, http.StatusInternalServerError, "Failed to generate landing page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockGenerationService)
			router := newGenerationRouter(service, 1024)
			service.On("Generate", mock.Anything, testUserID, mock.Anything, mock.Anything).Return(nil, tt.err)

			body, contentType := multipartBody(t, map[string]string{"businessInfo": `""`}, nil)
			req := httptest.NewRequest(http.MethodPost, "/generate", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, `{"success":false,"error":"`+tt.wantError+`"}`, w.Body.String())
		})
	}
}

func TestGenerationHandler_Generate_RequiresSession(t *testing.T) {
	service := new(MockGenerationService)
	router := newGenerationRouter(service, 1024)

	w := serve(router, http.MethodPost, "/anonymous/generate", `{}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	service.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerationHandler_Generate_NotMultipart(t *testing.T) {
	service := new(MockGenerationService)
	router := newGenerationRouter(service, 1024)

	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewBufferString("businessInfo=x"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid multipart form")
}

func TestGenerationHandler_Regenerate(t *testing.T) {
	service := new(MockGenerationService)
	router := newGenerationRouter(service, 1024)
	service.On("Regenerate", mock.Anything, testUserID, testPageID).Return(generatedPage(), nil)

	w := serve(router, http.MethodPost, "/pages/"+testPageID+"/regenerate", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testPageID)
	service.AssertExpectations(t)
}

func TestDecodeFormText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{`"  Acme  "`, "Acme"},
		{"plain text", "plain text"},
		{`{"b": 1,  "a": "x"}`, `{"a":"x","b":1}`},
		{`["x", "y"]`, `["x","y"]`},
		{`{not json`, `{not json`},
		{"42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeFormText(tt.raw))
		})
	}
}

func TestDecodeFormList(t *testing.T) {
	tests := []struct {
		name string
		raws []string
		want []string
	}{
		{"json array", []string{`["姓名", " 電郵 ", "", null]`}, []string{"姓名", "電郵"}},
		{"json string with commas", []string{`"a, b"`}, []string{"a", "b"}},
		{"plain comma list", []string{"name,email，phone、IG"}, []string{"name", "email", "phone", "IG"}},
		{"repeated fields", []string{"name", "email"}, []string{"name", "email"}},
		{"blank", []string{"  "}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeFormList(tt.raws))
		})
	}
}
