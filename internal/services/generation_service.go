package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/config"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/generation"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/repository"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/templates"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/metrics"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/storage"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/tracing"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/trigger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const eventPageCreated = "landing_page_created"

// GenerationService runs the prompt, completion, parse and compose pipeline and
// persists the resulting landing page.
type GenerationService struct {
	pageRepo   repository.LandingPageRepositoryInterface
	generator  ContentGenerator
	compositor PageCompositor
	assets     storage.Store
	notifier   EventNotifier
	config     *config.Config
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	pageRepo repository.LandingPageRepositoryInterface,
	generator ContentGenerator,
	compositor PageCompositor,
	assets storage.Store,
	notifier EventNotifier,
	cfg *config.Config,
) *GenerationService {
	return &GenerationService{
		pageRepo:   pageRepo,
		generator:  generator,
		compositor: compositor,
		assets:     assets,
		notifier:   notifier,
		config:     cfg,
	}
}

// Generate creates a landing page for a new webinar description
func (s *GenerationService) Generate(ctx context.Context, userID string, req *models.GenerationRequest, photos []models.UploadedPhoto) (*models.LandingPage, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "generation.pipeline", attribute.String("user.id", userID))
	defer span.End()

	req.Normalize()
	if missing := req.MissingRequired(); len(missing) > 0 {
		return nil, pkgerrors.InvalidInputError(strings.Join(missing, ", "), "is required")
	}

	urls, err := s.uploadPhotos(ctx, userID, photos)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	req.Assets = append(req.Assets, urls...)

	page := &models.LandingPage{
		ID:     uuid.NewString(),
		UserID: userID,
	}
	if err := s.build(ctx, page, req); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	sub := &models.FormSubmission{LandingPageID: page.ID, UserID: userID, Request: *req}
	if err := s.pageRepo.Create(ctx, page, sub); err != nil {
		logger.Error("Failed to save landing page",
			zap.String("user_id", userID),
			zap.Error(err))
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to save landing page: %w", err)
	}

	if s.notifier != nil {
		s.notifier.CallAsync(s.config.EventTriggers.PageCreatedTriggerURL, trigger.Event{
			Type:     eventPageCreated,
			RecordID: page.ID,
			PageID:   page.ID,
		})
	}

	logger.Info("Landing page generated",
		zap.String("page_id", page.ID),
		zap.String("user_id", userID),
		zap.String("bundle", page.TemplateBundle),
		zap.Int("assets", len(req.Assets)),
		zap.Duration("duration", time.Since(start)))

	return page, nil
}

// Regenerate reruns the pipeline for an existing page from its stored request
func (s *GenerationService) Regenerate(ctx context.Context, userID, pageID string) (*models.LandingPage, error) {
	ctx, span := tracing.StartSpan(ctx, "generation.regenerate", attribute.String("page.id", pageID))
	defer span.End()

	page, err := ownedPage(ctx, s.pageRepo, userID, pageID)
	if err != nil {
		return nil, err
	}

	req := page.Content.Request
	req.Normalize()
	if missing := req.MissingRequired(); len(missing) > 0 {
		return nil, pkgerrors.InvalidInputError("content.request", "stored request is incomplete")
	}

	if err := s.build(ctx, page, &req); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	sub := &models.FormSubmission{LandingPageID: page.ID, UserID: userID, Request: req}
	if err := s.pageRepo.Regenerate(ctx, page, sub); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to save regenerated page: %w", err)
	}

	logger.Info("Landing page regenerated",
		zap.String("page_id", page.ID),
		zap.String("bundle", page.TemplateBundle))

	return page, nil
}

// build fills page with content generated for req. page.ID must be set so the
// lead form can reference it.
func (s *GenerationService) build(ctx context.Context, page *models.LandingPage, req *models.GenerationRequest) error {
	prompt := generation.BuildPrompt(req, s.config.Generation.Language)

	result, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		metrics.Generations.WithLabelValues("failed").Inc()
		logger.Error("Content generation failed",
			zap.String("page_id", page.ID),
			zap.Error(err))
		return pkgerrors.UpstreamError("completion api", err)
	}

	content := generation.Parse(result.Raw, req.BusinessInfo)
	if err := generation.EnsureRequired(content); err != nil {
		content = generation.FallbackContent(req.BusinessInfo)
	}

	outcome := "generated"
	if !result.Valid {
		outcome = "fallback"
		logger.Warn("Using parsed content after exhausted attempts",
			zap.String("page_id", page.ID),
			zap.Int("attempts", result.Attempts),
			zap.Error(result.LastFailure))
	}
	metrics.Generations.WithLabelValues(outcome).Inc()

	composition, err := s.compositor.Compose(templates.ComposeInput{
		PageID:        page.ID,
		Content:       content,
		VisualStyle:   req.VisualStyle,
		BrandColors:   req.BrandColors,
		ContactFields: req.ContactFields,
		Assets:        req.Assets,
	})
	if err != nil {
		logger.Error("Failed to compose landing page",
			zap.String("page_id", page.ID),
			zap.Error(err))
		return fmt.Errorf("failed to compose landing page: %w", err)
	}

	page.Title = composition.Title
	page.MetaDescription = composition.MetaDescription
	page.HTML = composition.HTML
	page.CSS = composition.CSS
	page.JS = composition.JS
	page.VisualStyle = req.VisualStyle
	page.TemplateBundle = composition.Bundle
	page.Content = models.PageContent{Request: *req, Generated: content}
	return nil
}

func (s *GenerationService) uploadPhotos(ctx context.Context, userID string, photos []models.UploadedPhoto) ([]string, error) {
	if len(photos) == 0 {
		return nil, nil
	}
	if limit := s.config.Generation.MaxPhotos; limit > 0 && len(photos) > limit {
		metrics.AssetUploads.WithLabelValues("invalid").Inc()
		return nil, pkgerrors.InvalidInputError("photos", fmt.Sprintf("at most %d photos are allowed", limit))
	}
	if s.assets == nil {
		return nil, pkgerrors.InternalError("asset storage is not configured")
	}

	urls := make([]string, 0, len(photos))
	for _, photo := range photos {
		contentType := storage.DetectContentType(photo.ContentType, photo.Data)
		if err := storage.ValidateImageType(contentType); err != nil {
			metrics.AssetUploads.WithLabelValues("invalid").Inc()
			return nil, pkgerrors.InvalidInputError("photos", err.Error())
		}
		if err := storage.ValidateImageSize(int64(len(photo.Data)), s.config.Generation.MaxUploadSizeBytes); err != nil {
			metrics.AssetUploads.WithLabelValues("invalid").Inc()
			return nil, pkgerrors.InvalidInputError("photos", err.Error())
		}

		key := storage.AssetKey(userID, photo.FileName, contentType)
		url, err := s.assets.Put(ctx, key, contentType, photo.Data)
		if err != nil {
			metrics.AssetUploads.WithLabelValues("error").Inc()
			logger.Error("Failed to upload photo",
				zap.String("user_id", userID),
				zap.String("key", key),
				zap.Error(err))
			return nil, pkgerrors.UpstreamError("asset storage", err)
		}

		metrics.AssetUploads.WithLabelValues("success").Inc()
		urls = append(urls, url)
	}
	return urls, nil
}
