package services

import (
	"context"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/generation"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/templates"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/jwt"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/trigger"
)

// GenerationServiceInterface defines the interface for landing page generation
type GenerationServiceInterface interface {
	Generate(ctx context.Context, userID string, req *models.GenerationRequest, photos []models.UploadedPhoto) (*models.LandingPage, error)
	Regenerate(ctx context.Context, userID, pageID string) (*models.LandingPage, error)
}

// LandingPageServiceInterface defines the interface for page management and public serving
type LandingPageServiceInterface interface {
	List(ctx context.Context, userID string, opts models.ListOptions) (*models.PageListResponse, error)
	Get(ctx context.Context, userID, pageID string) (*models.LandingPage, error)
	Update(ctx context.Context, userID, pageID string, req *models.UpdatePageRequest) (*models.LandingPage, error)
	Delete(ctx context.Context, userID, pageID string) error
	SetPublished(ctx context.Context, userID, pageID string, published bool) (*models.LandingPage, error)
	Submissions(ctx context.Context, userID, pageID string) ([]models.FormSubmission, error)
	RenderPublic(ctx context.Context, pageID, viewerID string) (string, error)
}

// LeadServiceInterface defines the interface for lead capture and management
type LeadServiceInterface interface {
	CreateLead(ctx context.Context, req *models.CreateLeadRequest) (*models.CreateLeadResponse, error)
	ListLeads(ctx context.Context, userID, pageID string, opts models.ListOptions) (*models.LeadListResponse, error)
	UpdateStatus(ctx context.Context, userID, leadID string, status models.LeadStatus) (*models.Lead, error)
}

// RefineServiceInterface defines the interface for content block refinement
type RefineServiceInterface interface {
	Refine(ctx context.Context, req *models.RefineRequest) (*models.RefineResponse, error)
}

// AuthServiceInterface defines the interface for dashboard authentication
type AuthServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserSession, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.UserSession, string, error)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// ContentGenerator is the completion client used by the pipeline
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string) (*generation.Result, error)
	Complete(ctx context.Context, system, user string) (string, error)
}

// PageCompositor fills template bundles with generated content
type PageCompositor interface {
	Compose(in templates.ComposeInput) (*templates.Composition, error)
}

// EventNotifier publishes automation webhooks
type EventNotifier interface {
	CallAsync(targetURL string, event trigger.Event)
}

var (
	_ GenerationServiceInterface  = (*GenerationService)(nil)
	_ LandingPageServiceInterface = (*LandingPageService)(nil)
	_ LeadServiceInterface        = (*LeadService)(nil)
	_ RefineServiceInterface      = (*RefineService)(nil)
	_ AuthServiceInterface        = (*AuthService)(nil)

	_ ContentGenerator = (*generation.Client)(nil)
	_ PageCompositor   = (*templates.Store)(nil)
	_ EventNotifier    = (*trigger.Notifier)(nil)
)
