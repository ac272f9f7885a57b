package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/middleware"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/jwt"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testUserID = "0b6f7c8e-2a41-4b8e-9a57-6f7b4c1d2e01"
	testPageID = "7d3f1f7e-1111-4c1c-9c55-3a1c0e7e1a01"
	testLeadID = "5c2e9a10-3b7d-4f0e-8d21-9e4a6b7c8d02"
)

// withSession simulates the session middleware for userID
func withSession(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, &models.UserSession{
			UserID: userID,
			Email:  "owner@example.com",
		})
		c.Next()
	}
}

type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, userID string, req *models.GenerationRequest, photos []models.UploadedPhoto) (*models.LandingPage, error) {
	args := m.Called(ctx, userID, req, photos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

func (m *MockGenerationService) Regenerate(ctx context.Context, userID, pageID string) (*models.LandingPage, error) {
	args := m.Called(ctx, userID, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

type MockLandingPageService struct {
	mock.Mock
}

func (m *MockLandingPageService) List(ctx context.Context, userID string, opts models.ListOptions) (*models.PageListResponse, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PageListResponse), args.Error(1)
}

func (m *MockLandingPageService) Get(ctx context.Context, userID, pageID string) (*models.LandingPage, error) {
	args := m.Called(ctx, userID, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

func (m *MockLandingPageService) Update(ctx context.Context, userID, pageID string, req *models.UpdatePageRequest) (*models.LandingPage, error) {
	args := m.Called(ctx, userID, pageID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

func (m *MockLandingPageService) Delete(ctx context.Context, userID, pageID string) error {
	args := m.Called(ctx, userID, pageID)
	return args.Error(0)
}

func (m *MockLandingPageService) SetPublished(ctx context.Context, userID, pageID string, published bool) (*models.LandingPage, error) {
	args := m.Called(ctx, userID, pageID, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

func (m *MockLandingPageService) Submissions(ctx context.Context, userID, pageID string) ([]models.FormSubmission, error) {
	args := m.Called(ctx, userID, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormSubmission), args.Error(1)
}

func (m *MockLandingPageService) RenderPublic(ctx context.Context, pageID, viewerID string) (string, error) {
	args := m.Called(ctx, pageID, viewerID)
	return args.String(0), args.Error(1)
}

type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) CreateLead(ctx context.Context, req *models.CreateLeadRequest) (*models.CreateLeadResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreateLeadResponse), args.Error(1)
}

func (m *MockLeadService) ListLeads(ctx context.Context, userID, pageID string, opts models.ListOptions) (*models.LeadListResponse, error) {
	args := m.Called(ctx, userID, pageID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeadListResponse), args.Error(1)
}

func (m *MockLeadService) UpdateStatus(ctx context.Context, userID, leadID string, status models.LeadStatus) (*models.Lead, error) {
	args := m.Called(ctx, userID, leadID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

type MockRefineService struct {
	mock.Mock
}

func (m *MockRefineService) Refine(ctx context.Context, req *models.RefineRequest) (*models.RefineResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefineResponse), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserSession, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.UserSession), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.UserSession, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.UserSession), args.String(1), args.Error(2)
}

func (m *MockAuthService) GetSessionTTL() int {
	return 3600
}

func (m *MockAuthService) GetCookieDomain() string {
	return "example.com"
}

func (m *MockAuthService) GetCookieSecure() bool {
	return true
}

func (m *MockAuthService) GetTokenManager() *jwt.TokenManager {
	return nil
}
