package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/cache"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/repository"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/templates"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/metrics"
	"go.uber.org/zap"
)

const submissionHistoryLimit = 50

// LandingPageService handles dashboard page management and public page serving
type LandingPageService struct {
	pageRepo  repository.LandingPageRepositoryInterface
	pageCache cache.PageCacheInterface
}

// NewLandingPageService creates a new landing page service
func NewLandingPageService(pageRepo repository.LandingPageRepositoryInterface, pageCache cache.PageCacheInterface) *LandingPageService {
	return &LandingPageService{
		pageRepo:  pageRepo,
		pageCache: pageCache,
	}
}

// List returns the user's pages, newest first
func (s *LandingPageService) List(ctx context.Context, userID string, opts models.ListOptions) (*models.PageListResponse, error) {
	pages, total, err := s.pageRepo.ListByUser(ctx, userID, opts.Normalized())
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []models.LandingPageListItem{}
	}
	return &models.PageListResponse{Success: true, Pages: pages, Total: total}, nil
}

// Get returns one of the user's pages
func (s *LandingPageService) Get(ctx context.Context, userID, pageID string) (*models.LandingPage, error) {
	return ownedPage(ctx, s.pageRepo, userID, pageID)
}

// Update saves editor changes to a page
func (s *LandingPageService) Update(ctx context.Context, userID, pageID string, req *models.UpdatePageRequest) (*models.LandingPage, error) {
	page, err := ownedPage(ctx, s.pageRepo, userID, pageID)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return page, nil
	}

	updated, err := s.pageRepo.UpdateBody(ctx, page.ID, req)
	if err != nil {
		logger.Error("Failed to update landing page", zap.String("page_id", page.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// Delete removes a page together with its leads
func (s *LandingPageService) Delete(ctx context.Context, userID, pageID string) error {
	page, err := ownedPage(ctx, s.pageRepo, userID, pageID)
	if err != nil {
		return err
	}

	if err := s.pageRepo.Delete(ctx, page.ID); err != nil {
		return err
	}
	logger.Info("Landing page deleted", zap.String("page_id", page.ID), zap.String("user_id", userID))
	return nil
}

// SetPublished publishes or unpublishes a page
func (s *LandingPageService) SetPublished(ctx context.Context, userID, pageID string, published bool) (*models.LandingPage, error) {
	page, err := ownedPage(ctx, s.pageRepo, userID, pageID)
	if err != nil {
		return nil, err
	}
	if page.IsPublished == published {
		return page, nil
	}

	updated, err := s.pageRepo.SetPublished(ctx, page.ID, published)
	if err != nil {
		return nil, err
	}
	logger.Info("Landing page publish state changed",
		zap.String("page_id", page.ID),
		zap.Bool("published", published))
	return updated, nil
}

// Submissions returns the generation requests recorded for a page, newest first
func (s *LandingPageService) Submissions(ctx context.Context, userID, pageID string) ([]models.FormSubmission, error) {
	page, err := ownedPage(ctx, s.pageRepo, userID, pageID)
	if err != nil {
		return nil, err
	}

	subs, err := s.pageRepo.Submissions(ctx, page.ID, submissionHistoryLimit)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []models.FormSubmission{}
	}
	return subs, nil
}

// RenderPublic returns the full HTML document of a page. Unpublished pages are
// only visible to their owner; everyone else gets not found.
func (s *LandingPageService) RenderPublic(ctx context.Context, pageID, viewerID string) (string, error) {
	notFound := pkgerrors.NotFoundError("landing page")

	parsed, err := uuid.Parse(pageID)
	if err != nil {
		return "", notFound
	}
	id := parsed.String()

	if s.pageCache != nil {
		if cached, found := s.pageCache.Get(id); found {
			if !visibleTo(cached, viewerID) {
				return "", notFound
			}
			metrics.PageViews.WithLabelValues("cache").Inc()
			return cached.Document, nil
		}
	}

	page, err := s.pageRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	document, err := templates.RenderDocument(page)
	if err != nil {
		logger.Error("Failed to render landing page", zap.String("page_id", id), zap.Error(err))
		return "", err
	}

	rendered := &cache.RenderedPage{
		PageID:    page.ID,
		OwnerID:   page.UserID,
		Published: page.IsPublished,
		Document:  document,
	}
	if s.pageCache != nil {
		s.pageCache.Set(rendered)
	}

	if !visibleTo(rendered, viewerID) {
		return "", notFound
	}
	metrics.PageViews.WithLabelValues("db").Inc()
	return document, nil
}

func visibleTo(page *cache.RenderedPage, viewerID string) bool {
	return page.Published || (viewerID != "" && viewerID == page.OwnerID)
}
