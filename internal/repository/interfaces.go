package repository

import (
	"context"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/database/postgres"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
)

var (
	_ LandingPageStore = (*postgres.Client)(nil)
	_ LeadStore        = (*postgres.Client)(nil)
	_ UserStore        = (*postgres.Client)(nil)
	_ SubmissionStore  = (*postgres.Client)(nil)
)

// LandingPageStore is the persistence surface for landing pages
type LandingPageStore interface {
	CreateLandingPage(ctx context.Context, page *models.LandingPage) error
	GetLandingPage(ctx context.Context, id string) (*models.LandingPage, error)
	LandingPageExists(ctx context.Context, id string) (bool, error)
	ListLandingPages(ctx context.Context, userID string, opts models.ListOptions) ([]models.LandingPageListItem, int, error)
	UpdateLandingPageBody(ctx context.Context, id string, req *models.UpdatePageRequest) (*models.LandingPage, error)
	ReplaceLandingPageContent(ctx context.Context, page *models.LandingPage) error
	SetLandingPagePublished(ctx context.Context, id string, published bool) (*models.LandingPage, error)
	DeleteLandingPage(ctx context.Context, id string) error
}

// LeadStore is the persistence surface for leads
type LeadStore interface {
	CreateLead(ctx context.Context, lead *models.Lead) error
	GetLead(ctx context.Context, id string) (*models.Lead, error)
	ListLeadsByPage(ctx context.Context, pageID string, opts models.ListOptions) ([]models.Lead, int, error)
	UpdateLeadStatus(ctx context.Context, id string, status models.LeadStatus) (*models.Lead, error)
}

// UserStore is the persistence surface for accounts
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// SubmissionStore is the persistence surface for form submission history
type SubmissionStore interface {
	CreateFormSubmission(ctx context.Context, sub *models.FormSubmission) error
	ListFormSubmissions(ctx context.Context, pageID string, limit int) ([]models.FormSubmission, error)
}

// LandingPageRepositoryInterface is used by the page, generation and lead services
type LandingPageRepositoryInterface interface {
	Create(ctx context.Context, page *models.LandingPage, sub *models.FormSubmission) error
	GetByID(ctx context.Context, id string) (*models.LandingPage, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByUser(ctx context.Context, userID string, opts models.ListOptions) ([]models.LandingPageListItem, int, error)
	UpdateBody(ctx context.Context, id string, req *models.UpdatePageRequest) (*models.LandingPage, error)
	Regenerate(ctx context.Context, page *models.LandingPage, sub *models.FormSubmission) error
	SetPublished(ctx context.Context, id string, published bool) (*models.LandingPage, error)
	Delete(ctx context.Context, id string) error
	Submissions(ctx context.Context, pageID string, limit int) ([]models.FormSubmission, error)
}

// LeadRepositoryInterface is used by the lead service
type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	ListByPage(ctx context.Context, pageID string, opts models.ListOptions) ([]models.Lead, int, error)
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (*models.Lead, error)
}

// UserRepositoryInterface is used by the auth service
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
