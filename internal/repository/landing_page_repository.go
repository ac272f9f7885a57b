package repository

import (
	"context"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/cache"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"go.uber.org/zap"
)

// LandingPageRepository handles landing page data access and keeps the
// rendered page cache in step with every mutation.
type LandingPageRepository struct {
	pages       LandingPageStore
	submissions SubmissionStore
	pageCache   cache.PageCacheInterface
}

// NewLandingPageRepository creates a new landing page repository
func NewLandingPageRepository(pages LandingPageStore, submissions SubmissionStore, pageCache cache.PageCacheInterface) *LandingPageRepository {
	return &LandingPageRepository{
		pages:       pages,
		submissions: submissions,
		pageCache:   pageCache,
	}
}

var _ LandingPageRepositoryInterface = (*LandingPageRepository)(nil)

// Create stores a new page and its form submission snapshot.
// A failed snapshot is logged; the page itself is already saved.
func (r *LandingPageRepository) Create(ctx context.Context, page *models.LandingPage, sub *models.FormSubmission) error {
	if err := r.pages.CreateLandingPage(ctx, page); err != nil {
		return err
	}
	r.appendSubmission(ctx, sub)
	return nil
}

// GetByID retrieves a page
func (r *LandingPageRepository) GetByID(ctx context.Context, id string) (*models.LandingPage, error) {
	return r.pages.GetLandingPage(ctx, id)
}

// Exists reports whether a page exists
func (r *LandingPageRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.pages.LandingPageExists(ctx, id)
}

// ListByUser lists a user's pages
func (r *LandingPageRepository) ListByUser(ctx context.Context, userID string, opts models.ListOptions) ([]models.LandingPageListItem, int, error) {
	return r.pages.ListLandingPages(ctx, userID, opts)
}

// UpdateBody applies an editor save
func (r *LandingPageRepository) UpdateBody(ctx context.Context, id string, req *models.UpdatePageRequest) (*models.LandingPage, error) {
	page, err := r.pages.UpdateLandingPageBody(ctx, id, req)
	if err != nil {
		return nil, err
	}
	r.invalidate(id)
	return page, nil
}

// Regenerate replaces a page's generated output and appends the request snapshot
func (r *LandingPageRepository) Regenerate(ctx context.Context, page *models.LandingPage, sub *models.FormSubmission) error {
	if err := r.pages.ReplaceLandingPageContent(ctx, page); err != nil {
		return err
	}
	r.invalidate(page.ID)
	r.appendSubmission(ctx, sub)
	return nil
}

// SetPublished changes the publish state
func (r *LandingPageRepository) SetPublished(ctx context.Context, id string, published bool) (*models.LandingPage, error) {
	page, err := r.pages.SetLandingPagePublished(ctx, id, published)
	if err != nil {
		return nil, err
	}
	r.invalidate(id)
	return page, nil
}

// Delete removes a page
func (r *LandingPageRepository) Delete(ctx context.Context, id string) error {
	if err := r.pages.DeleteLandingPage(ctx, id); err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}

// Submissions returns the form submission history of a page
func (r *LandingPageRepository) Submissions(ctx context.Context, pageID string, limit int) ([]models.FormSubmission, error) {
	return r.submissions.ListFormSubmissions(ctx, pageID, limit)
}

func (r *LandingPageRepository) appendSubmission(ctx context.Context, sub *models.FormSubmission) {
	if sub == nil {
		return
	}
	if err := r.submissions.CreateFormSubmission(ctx, sub); err != nil {
		logger.Error("Failed to store form submission",
			zap.String("page_id", sub.LandingPageID),
			zap.Error(err))
	}
}

func (r *LandingPageRepository) invalidate(id string) {
	if r.pageCache != nil {
		r.pageCache.Invalidate(id)
	}
}
