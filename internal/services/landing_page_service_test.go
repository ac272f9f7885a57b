package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/cache"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/services"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ownedTestPage(published bool) *models.LandingPage {
	return &models.LandingPage{
		ID:          pageID,
		UserID:      ownerID,
		Title:       "Acme 招生",
		HTML:        `<main id="page">hello</main>`,
		CSS:         "body{color:red}",
		JS:          "console.log(1)",
		IsPublished: published,
	}
}

func TestLandingPageService_List(t *testing.T) {
	pages := new(MockLandingPageRepository)
	service := services.NewLandingPageService(pages, nil)

	pages.On("ListByUser", mock.Anything, ownerID, models.ListOptions{Limit: 20}).Return(nil, 0, nil).Once()

	resp, err := service.List(context.Background(), ownerID, models.ListOptions{})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Pages)
	assert.Empty(t, resp.Pages)
	pages.AssertExpectations(t)
}

func TestLandingPageService_Get_AccessControl(t *testing.T) {
	pages := new(MockLandingPageRepository)
	service := services.NewLandingPageService(pages, nil)
	ctx := context.Background()

	pages.On("GetByID", mock.Anything, pageID).Return(ownedTestPage(false), nil)

	page, err := service.Get(ctx, ownerID, pageID)
	require.NoError(t, err)
	assert.Equal(t, pageID, page.ID)

	_, err = service.Get(ctx, otherID, pageID)
	assert.ErrorIs(t, err, pkgerrors.ErrAccessDenied)

	_, err = service.Get(ctx, ownerID, "42")
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
}

func TestLandingPageService_Update(t *testing.T) {
	pages := new(MockLandingPageRepository)
	service := services.NewLandingPageService(pages, nil)
	ctx := context.Background()

	title := "新標題"
	req := &models.UpdatePageRequest{Title: &title}
	updated := ownedTestPage(false)
	updated.Title = title

	pages.On("GetByID", mock.Anything, pageID).Return(ownedTestPage(false), nil)
	pages.On("UpdateBody", mock.Anything, pageID, req).Return(updated, nil).Once()

	page, err := service.Update(ctx, ownerID, pageID, req)
	require.NoError(t, err)
	assert.Equal(t, title, page.Title)

	// an empty update changes nothing
	page, err = service.Update(ctx, ownerID, pageID, &models.UpdatePageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Acme 招生", page.Title)

	pages.AssertNumberOfCalls(t, "UpdateBody", 1)
}

func TestLandingPageService_SetPublished(t *testing.T) {
	pages := new(MockLandingPageRepository)
	service := services.NewLandingPageService(pages, nil)
	ctx := context.Background()

	pages.On("GetByID", mock.Anything, pageID).Return(ownedTestPage(false), nil)
	pages.On("SetPublished", mock.Anything, pageID, true).Return(ownedTestPage(true), nil).Once()

	page, err := service.SetPublished(ctx, ownerID, pageID, true)
	require.NoError(t, err)
	assert.True(t, page.IsPublished)

	// already unpublished
	page, err = service.SetPublished(ctx, ownerID, pageID, false)
	require.NoError(t, err)
	assert.False(t, page.IsPublished)

	_, err = service.SetPublished(ctx, otherID, pageID, true)
	assert.ErrorIs(t, err, pkgerrors.ErrAccessDenied)

	pages.AssertNumberOfCalls(t, "SetPublished", 1)
}

func TestLandingPageService_Delete(t *testing.T) {
	pages := new(MockLandingPageRepository)
	service := services.NewLandingPageService(pages, nil)

	pages.On("GetByID", mock.Anything, pageID).Return(ownedTestPage(true), nil)
	pages.On("Delete", mock.Anything, pageID).Return(nil).Once()

	require.NoError(t, service.Delete(context.Background(), ownerID, pageID))
	assert.ErrorIs(t, service.Delete(context.Background(), otherID, pageID), pkgerrors.ErrAccessDenied)
	pages.AssertNumberOfCalls(t, "Delete", 1)
}

func TestLandingPageService_Submissions(t *testing.T) {
	pages := new(MockLandingPageRepository)
	service := services.NewLandingPageService(pages, nil)

	subs := []models.FormSubmission{{ID: "s1", LandingPageID: pageID}}
	pages.On("GetByID", mock.Anything, pageID).Return(ownedTestPage(true), nil)
	pages.On("Submissions", mock.Anything, pageID, 50).Return(subs, nil).Once()

	got, err := service.Submissions(context.Background(), ownerID, pageID)
	require.NoError(t, err)
	assert.Equal(t, subs, got)
}

func TestLandingPageService_RenderPublic(t *testing.T) {
	t.Run("published page is rendered and cached", func(t *testing.T) {
		pages := new(MockLandingPageRepository)
		pageCache := cache.NewPageCache(0)
		service := services.NewLandingPageService(pages, pageCache)

		pages.On("GetByID", mock.Anything, pageID).Return(ownedTestPage(true), nil).Once()

		doc, err := service.RenderPublic(context.Background(), pageID, "")
		require.NoError(t, err)
		assert.Contains(t, doc, "<!DOCTYPE html>")
		assert.Contains(t, doc, `<main id="page">hello</main>`)
		assert.Contains(t, doc, "body{color:red}")

		again, err := service.RenderPublic(context.Background(), pageID, "")
		require.NoError(t, err)
		assert.Equal(t, doc, again)

		pages.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("unpublished page is hidden from visitors", func(t *testing.T) {
		pages := new(MockLandingPageRepository)
		service := services.NewLandingPageService(pages, cache.NewPageCache(0))

		pages.On("GetByID", mock.Anything, pageID).Return(ownedTestPage(false), nil).Once()

		_, err := service.RenderPublic(context.Background(), pageID, "")
		assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

		_, err = service.RenderPublic(context.Background(), pageID, otherID)
		assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

		doc, err := service.RenderPublic(context.Background(), pageID, ownerID)
		require.NoError(t, err)
		assert.Contains(t, doc, "hello")

		pages.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("cache hit", func(t *testing.T) {
		pages := new(MockLandingPageRepository)
		pageCache := new(MockPageCache)
		service := services.NewLandingPageService(pages, pageCache)

		pageCache.On("Get", pageID).Return(&cache.RenderedPage{PageID: pageID, Published: true, Document: "<html>cached</html>"}, true).Once()

		doc, err := service.RenderPublic(context.Background(), pageID, "")
		require.NoError(t, err)
		assert.Equal(t, "<html>cached</html>", doc)
		pages.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("invalid id and missing page", func(t *testing.T) {
		pages := new(MockLandingPageRepository)
		service := services.NewLandingPageService(pages, nil)

		_, err := service.RenderPublic(context.Background(), "favicon.ico", "")
		assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

		pages.On("GetByID", mock.Anything, pageID).Return(nil, pkgerrors.NotFoundError("landing page")).Once()
		_, err = service.RenderPublic(context.Background(), pageID, "")
		assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		pages := new(MockLandingPageRepository)
		service := services.NewLandingPageService(pages, nil)

		pages.On("GetByID", mock.Anything, pageID).Return(nil, errors.New("timeout")).Once()
		_, err := service.RenderPublic(context.Background(), pageID, "")
		require.Error(t, err)
		assert.Equal(t, 500, pkgerrors.HTTPStatus(err))
	})
}
