package services

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/config"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/repository"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/metrics"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/trigger"
	"go.uber.org/zap"
)

const eventLeadCreated = "lead_created"

// LeadService handles lead submissions from landing pages and lead follow-up
type LeadService struct {
	leadRepo repository.LeadRepositoryInterface
	pageRepo repository.LandingPageRepositoryInterface
	notifier EventNotifier
	config   *config.Config
}

// NewLeadService creates a new lead service
func NewLeadService(
	leadRepo repository.LeadRepositoryInterface,
	pageRepo repository.LandingPageRepositoryInterface,
	notifier EventNotifier,
	cfg *config.Config,
) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		pageRepo: pageRepo,
		notifier: notifier,
		config:   cfg,
	}
}

// CreateLead stores a visitor submission for an existing page.
// Contact fields are kept exactly as submitted.
func (s *LeadService) CreateLead(ctx context.Context, req *models.CreateLeadRequest) (*models.CreateLeadResponse, error) {
	pageID, err := parseID("pageId", req.PageID)
	if err != nil {
		metrics.LeadSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	exists, err := s.pageRepo.Exists(ctx, pageID)
	if err != nil {
		metrics.LeadSubmissions.WithLabelValues("error").Inc()
		return nil, err
	}
	if !exists {
		metrics.LeadSubmissions.WithLabelValues("page_not_found").Inc()
		return nil, pkgerrors.NotFoundError("landing page")
	}

	lead := &models.Lead{
		LandingPageID:  pageID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Instagram:      req.Instagram,
		AdditionalInfo: normalizeAdditionalInfo(req.AdditionalInfo),
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		metrics.LeadSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to create lead", zap.String("page_id", pageID), zap.Error(err))
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.CallAsync(s.config.EventTriggers.LeadCreatedTriggerURL, trigger.Event{
			Type:     eventLeadCreated,
			RecordID: lead.ID,
			PageID:   pageID,
		})
	}

	metrics.LeadSubmissions.WithLabelValues("success").Inc()
	logger.Info("Lead captured", zap.String("lead_id", lead.ID), zap.String("page_id", pageID))

	return &models.CreateLeadResponse{
		Success: true,
		Data: &models.LeadData{
			ID:        lead.ID,
			PageID:    pageID,
			Name:      lead.Name,
			Email:     lead.Email,
			Phone:     lead.Phone,
			Instagram: lead.Instagram,
			CreatedAt: lead.CreatedAt,
		},
	}, nil
}

// ListLeads returns the leads of one of the user's pages, newest first
func (s *LeadService) ListLeads(ctx context.Context, userID, pageID string, opts models.ListOptions) (*models.LeadListResponse, error) {
	page, err := ownedPage(ctx, s.pageRepo, userID, pageID)
	if err != nil {
		return nil, err
	}

	leads, total, err := s.leadRepo.ListByPage(ctx, page.ID, opts.Normalized())
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	return &models.LeadListResponse{Success: true, Leads: leads, Total: total}, nil
}

// UpdateStatus changes the follow-up status of a lead on one of the user's pages
func (s *LeadService) UpdateStatus(ctx context.Context, userID, leadID string, status models.LeadStatus) (*models.Lead, error) {
	if !status.IsValid() {
		return nil, pkgerrors.InvalidInputError("status", "unknown lead status")
	}

	id, err := parseID("id", leadID)
	if err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := ownedPage(ctx, s.pageRepo, userID, lead.LandingPageID); err != nil {
		return nil, err
	}

	return s.leadRepo.UpdateStatus(ctx, id, status)
}

// normalizeAdditionalInfo keeps JSON objects as they are, wraps any other
// JSON value as {"value": ...} and turns missing input into {}.
func normalizeAdditionalInfo(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || !json.Valid(trimmed) {
		return json.RawMessage(`{}`)
	}
	if trimmed[0] == '{' {
		return json.RawMessage(trimmed)
	}

	wrapped, err := json.Marshal(map[string]json.RawMessage{"value": trimmed})
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return wrapped
}
