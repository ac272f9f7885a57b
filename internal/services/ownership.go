package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/repository"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
)

// parseID rejects ids that are not UUIDs before they reach the database
func parseID(field, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", pkgerrors.InvalidInputError(field, "is required")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", pkgerrors.InvalidInputError(field, "must be a valid UUID")
	}
	return parsed.String(), nil
}

// ownedPage loads a page and checks that userID owns it
func ownedPage(ctx context.Context, pages repository.LandingPageRepositoryInterface, userID, pageID string) (*models.LandingPage, error) {
	id, err := parseID("id", pageID)
	if err != nil {
		return nil, err
	}

	page, err := pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page.UserID != userID {
		return nil, pkgerrors.AccessDeniedError("landing page belongs to another user")
	}
	return page, nil
}
