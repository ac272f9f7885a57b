package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"go.uber.org/zap"
)

// CreateFormSubmission appends a generation request snapshot to the page history
func (c *Client) CreateFormSubmission(ctx context.Context, sub *models.FormSubmission) error {
	start := time.Now()
	operation := "createFormSubmission"

	payload, err := json.Marshal(sub.Request)
	if err != nil {
		return fmt.Errorf("failed to encode form submission: %w", err)
	}

	err = c.db.QueryRow(ctx, `
		INSERT INTO form_submissions (id, landing_page_id, user_id, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		sub.ID, sub.LandingPageID, sub.UserID, payload,
	).Scan(&sub.CreatedAt)

	finish(operation, start, err, zap.String("page_id", sub.LandingPageID))
	if err != nil {
		return fmt.Errorf("failed to create form submission: %w", err)
	}
	return nil
}

// ListFormSubmissions returns the submission history of a page, newest first
func (c *Client) ListFormSubmissions(ctx context.Context, pageID string, limit int) ([]models.FormSubmission, error) {
	start := time.Now()
	operation := "listFormSubmissions"

	if limit <= 0 {
		limit = 20
	}

	rows, err := c.db.Query(ctx, `
		SELECT id::text, landing_page_id::text, user_id::text, payload, created_at
		FROM form_submissions
		WHERE landing_page_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		pageID, limit)
	if err != nil {
		finish(operation, start, err)
		return nil, fmt.Errorf("failed to query form submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]models.FormSubmission, 0)
	for rows.Next() {
		var (
			sub     models.FormSubmission
			payload []byte
		)
		if err := rows.Scan(&sub.ID, &sub.LandingPageID, &sub.UserID, &payload, &sub.CreatedAt); err != nil {
			finish(operation, start, err)
			return nil, fmt.Errorf("failed to scan form submission row: %w", err)
		}
		if err := json.Unmarshal(payload, &sub.Request); err != nil {
			finish(operation, start, err)
			return nil, fmt.Errorf("failed to decode form submission: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		finish(operation, start, err)
		return nil, fmt.Errorf("error iterating form submission rows: %w", err)
	}

	finish(operation, start, nil, zap.Int("count", len(subs)))
	return subs, nil
}
