package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"go.uber.org/zap"
)

const landingPageColumns = `
	id::text, user_id::text, title, meta_description, html, css, js, content,
	visual_style, template_bundle, is_published, published_at, created_at, updated_at`

func scanLandingPage(row pgx.Row) (*models.LandingPage, error) {
	var (
		page    models.LandingPage
		content []byte
	)

	err := row.Scan(
		&page.ID, &page.UserID, &page.Title, &page.MetaDescription,
		&page.HTML, &page.CSS, &page.JS, &content,
		&page.VisualStyle, &page.TemplateBundle, &page.IsPublished, &page.PublishedAt,
		&page.CreatedAt, &page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(content) > 0 {
		if err := json.Unmarshal(content, &page.Content); err != nil {
			return nil, fmt.Errorf("failed to decode page content: %w", err)
		}
	}
	return &page, nil
}

func pageNotFound(id string) error {
	return pkgerrors.NotFoundError(fmt.Sprintf("landing page %s", id))
}

// CreateLandingPage inserts a new page. CreatedAt and UpdatedAt are filled from the database.
func (c *Client) CreateLandingPage(ctx context.Context, page *models.LandingPage) error {
	start := time.Now()
	operation := "createLandingPage"

	content, err := json.Marshal(page.Content)
	if err != nil {
		return fmt.Errorf("failed to encode page content: %w", err)
	}

	err = c.db.QueryRow(ctx, `
		INSERT INTO landing_pages (
			id, user_id, title, meta_description, html, css, js, content, visual_style, template_bundle
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		page.ID, page.UserID, page.Title, page.MetaDescription,
		page.HTML, page.CSS, page.JS, content, page.VisualStyle, page.TemplateBundle,
	).Scan(&page.CreatedAt, &page.UpdatedAt)

	finish(operation, start, err, zap.String("page_id", page.ID))
	if err != nil {
		return fmt.Errorf("failed to create landing page: %w", err)
	}
	return nil
}

// GetLandingPage fetches a page by id
func (c *Client) GetLandingPage(ctx context.Context, id string) (*models.LandingPage, error) {
	start := time.Now()
	operation := "getLandingPage"

	page, err := scanLandingPage(c.db.QueryRow(ctx,
		`SELECT `+landingPageColumns+` FROM landing_pages WHERE id = $1`, id))

	finish(operation, start, err, zap.String("page_id", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pageNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query landing page: %w", err)
	}
	return page, nil
}

// LandingPageExists reports whether a page with id exists
func (c *Client) LandingPageExists(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	operation := "landingPageExists"

	var exists bool
	err := c.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM landing_pages WHERE id = $1)`, id).Scan(&exists)

	finish(operation, start, err, zap.String("page_id", id))
	if err != nil {
		return false, fmt.Errorf("failed to check landing page: %w", err)
	}
	return exists, nil
}

// ListLandingPages returns a user's pages, newest first, with the total count
func (c *Client) ListLandingPages(ctx context.Context, userID string, opts models.ListOptions) ([]models.LandingPageListItem, int, error) {
	start := time.Now()
	operation := "listLandingPages"
	opts = opts.Normalized()

	rows, err := c.db.Query(ctx, `
		SELECT
			p.id::text, p.title, p.meta_description, p.visual_style, p.is_published,
			p.published_at, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM leads l WHERE l.landing_page_id = p.id) AS lead_count,
			COUNT(*) OVER () AS total
		FROM landing_pages p
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, opts.Limit, opts.Offset)
	if err != nil {
		finish(operation, start, err)
		return nil, 0, fmt.Errorf("failed to query landing pages: %w", err)
	}
	defer rows.Close()

	pages := make([]models.LandingPageListItem, 0)
	total := 0
	for rows.Next() {
		var item models.LandingPageListItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.MetaDescription, &item.VisualStyle, &item.IsPublished,
			&item.PublishedAt, &item.CreatedAt, &item.UpdatedAt, &item.LeadCount, &total,
		); err != nil {
			finish(operation, start, err)
			return nil, 0, fmt.Errorf("failed to scan landing page row: %w", err)
		}
		pages = append(pages, item)
	}

	if err := rows.Err(); err != nil {
		finish(operation, start, err)
		return nil, 0, fmt.Errorf("error iterating landing page rows: %w", err)
	}

	finish(operation, start, nil, zap.Int("count", len(pages)))
	return pages, total, nil
}

// UpdateLandingPageBody applies an editor save. Nil fields keep their value.
func (c *Client) UpdateLandingPageBody(ctx context.Context, id string, req *models.UpdatePageRequest) (*models.LandingPage, error) {
	start := time.Now()
	operation := "updateLandingPageBody"

	page, err := scanLandingPage(c.db.QueryRow(ctx, `
		UPDATE landing_pages SET
			title = COALESCE($2, title),
			meta_description = COALESCE($3, meta_description),
			html = COALESCE($4, html),
			css = COALESCE($5, css),
			js = COALESCE($6, js),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+landingPageColumns,
		id, req.Title, req.MetaDescription, req.HTML, req.CSS, req.JS))

	finish(operation, start, err, zap.String("page_id", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pageNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update landing page: %w", err)
	}
	return page, nil
}

// ReplaceLandingPageContent stores a regenerated page. The last writer wins.
func (c *Client) ReplaceLandingPageContent(ctx context.Context, page *models.LandingPage) error {
	start := time.Now()
	operation := "replaceLandingPageContent"

	content, err := json.Marshal(page.Content)
	if err != nil {
		return fmt.Errorf("failed to encode page content: %w", err)
	}

	err = c.db.QueryRow(ctx, `
		UPDATE landing_pages SET
			title = $2, meta_description = $3, html = $4, css = $5, js = $6,
			content = $7, visual_style = $8, template_bundle = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		page.ID, page.Title, page.MetaDescription, page.HTML, page.CSS, page.JS,
		content, page.VisualStyle, page.TemplateBundle,
	).Scan(&page.UpdatedAt)

	finish(operation, start, err, zap.String("page_id", page.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return pageNotFound(page.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to replace landing page content: %w", err)
	}
	return nil
}

// SetLandingPagePublished publishes or unpublishes a page.
// Publishing keeps the first published_at; unpublishing clears it.
func (c *Client) SetLandingPagePublished(ctx context.Context, id string, published bool) (*models.LandingPage, error) {
	start := time.Now()
	operation := "setLandingPagePublished"

	page, err := scanLandingPage(c.db.QueryRow(ctx, `
		UPDATE landing_pages SET
			is_published = $2,
			published_at = CASE WHEN $2 THEN COALESCE(published_at, NOW()) ELSE NULL END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+landingPageColumns,
		id, published))

	finish(operation, start, err, zap.String("page_id", id), zap.Bool("published", published))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pageNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update publish state: %w", err)
	}
	return page, nil
}

// DeleteLandingPage removes a page; leads and submissions cascade
func (c *Client) DeleteLandingPage(ctx context.Context, id string) error {
	start := time.Now()
	operation := "deleteLandingPage"

	tag, err := c.db.Exec(ctx, `DELETE FROM landing_pages WHERE id = $1`, id)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}

	finish(operation, start, err, zap.String("page_id", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return pageNotFound(id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete landing page: %w", err)
	}
	return nil
}
