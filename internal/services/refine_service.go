package services

import (
	"context"
	"errors"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/config"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/generation"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/metrics"
	"go.uber.org/zap"
)

var errEmptyRefinement = errors.New("completion returned an empty refinement")

// RefineService rewrites single content blocks on request
type RefineService struct {
	generator ContentGenerator
	config    *config.Config
}

// NewRefineService creates a new refine service
func NewRefineService(generator ContentGenerator, cfg *config.Config) *RefineService {
	return &RefineService{
		generator: generator,
		config:    cfg,
	}
}

// Refine makes one completion call. Failures are not retried.
func (s *RefineService) Refine(ctx context.Context, req *models.RefineRequest) (*models.RefineResponse, error) {
	prompt := generation.BuildRefinePrompt(req, s.config.Generation.Language)

	text, err := s.generator.Complete(ctx, generation.RefineSystemInstruction, prompt)
	if err != nil {
		metrics.Refinements.WithLabelValues("error").Inc()
		logger.Error("Refinement failed", zap.String("block_type", req.BlockType), zap.Error(err))
		return nil, pkgerrors.UpstreamError("completion api", err)
	}
	if text == "" {
		metrics.Refinements.WithLabelValues("empty").Inc()
		return nil, pkgerrors.UpstreamError("completion api", errEmptyRefinement)
	}

	metrics.Refinements.WithLabelValues("success").Inc()
	return &models.RefineResponse{Success: true, RefinedContent: text}, nil
}
