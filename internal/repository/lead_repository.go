package repository

import (
	"context"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
)

// LeadRepository handles lead data access
type LeadRepository struct {
	store LeadStore
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(store LeadStore) *LeadRepository {
	return &LeadRepository{store: store}
}

var _ LeadRepositoryInterface = (*LeadRepository)(nil)

// Create stores a lead
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return r.store.CreateLead(ctx, lead)
}

// GetByID retrieves a lead
func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	return r.store.GetLead(ctx, id)
}

// ListByPage lists the leads of a page
func (r *LeadRepository) ListByPage(ctx context.Context, pageID string, opts models.ListOptions) ([]models.Lead, int, error) {
	return r.store.ListLeadsByPage(ctx, pageID, opts)
}

// UpdateStatus changes a lead's status
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (*models.Lead, error) {
	return r.store.UpdateLeadStatus(ctx, id, status)
}
