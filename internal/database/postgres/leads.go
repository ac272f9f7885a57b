package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"go.uber.org/zap"
)

const leadColumns = `
	id::text, landing_page_id::text, name, email, phone, instagram, additional_info,
	status, created_at, updated_at`

func scanLead(row pgx.Row) (*models.Lead, error) {
	var (
		lead   models.Lead
		status string
		info   []byte
	)
	err := row.Scan(
		&lead.ID, &lead.LandingPageID, &lead.Name, &lead.Email, &lead.Phone, &lead.Instagram,
		&info, &status, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	lead.Status = models.LeadStatus(status)
	lead.AdditionalInfo = info
	return &lead, nil
}

// CreateLead inserts a lead exactly as submitted. Status and timestamps come back from the database.
func (c *Client) CreateLead(ctx context.Context, lead *models.Lead) error {
	start := time.Now()
	operation := "createLead"

	info := []byte(lead.AdditionalInfo)
	if len(info) == 0 {
		info = []byte("{}")
	}

	var status string
	err := c.db.QueryRow(ctx, `
		INSERT INTO leads (id, landing_page_id, name, email, phone, instagram, additional_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING status, created_at, updated_at`,
		lead.ID, lead.LandingPageID, lead.Name, lead.Email, lead.Phone, lead.Instagram, info,
	).Scan(&status, &lead.CreatedAt, &lead.UpdatedAt)

	finish(operation, start, err, zap.String("page_id", lead.LandingPageID))
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	lead.Status = models.LeadStatus(status)
	lead.AdditionalInfo = info
	return nil
}

// GetLead fetches a lead by id
func (c *Client) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	start := time.Now()
	operation := "getLead"

	lead, err := scanLead(c.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))

	finish(operation, start, err, zap.String("lead_id", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pkgerrors.NotFoundError(fmt.Sprintf("lead %s", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query lead: %w", err)
	}
	return lead, nil
}

// ListLeadsByPage returns the leads of a page, newest first, with the total count
func (c *Client) ListLeadsByPage(ctx context.Context, pageID string, opts models.ListOptions) ([]models.Lead, int, error) {
	start := time.Now()
	operation := "listLeadsByPage"
	opts = opts.Normalized()

	rows, err := c.db.Query(ctx, `
		SELECT `+leadColumns+`, COUNT(*) OVER () AS total
		FROM leads
		WHERE landing_page_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		pageID, opts.Limit, opts.Offset)
	if err != nil {
		finish(operation, start, err)
		return nil, 0, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads := make([]models.Lead, 0)
	total := 0
	for rows.Next() {
		var (
			lead   models.Lead
			status string
			info   []byte
		)
		if err := rows.Scan(
			&lead.ID, &lead.LandingPageID, &lead.Name, &lead.Email, &lead.Phone, &lead.Instagram,
			&info, &status, &lead.CreatedAt, &lead.UpdatedAt, &total,
		); err != nil {
			finish(operation, start, err)
			return nil, 0, fmt.Errorf("failed to scan lead row: %w", err)
		}
		lead.Status = models.LeadStatus(status)
		lead.AdditionalInfo = info
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		finish(operation, start, err)
		return nil, 0, fmt.Errorf("error iterating lead rows: %w", err)
	}

	finish(operation, start, nil, zap.Int("count", len(leads)))
	return leads, total, nil
}

// UpdateLeadStatus changes the follow-up status of a lead
func (c *Client) UpdateLeadStatus(ctx context.Context, id string, status models.LeadStatus) (*models.Lead, error) {
	start := time.Now()
	operation := "updateLeadStatus"

	lead, err := scanLead(c.db.QueryRow(ctx, `
		UPDATE leads SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, string(status)))

	finish(operation, start, err, zap.String("lead_id", id), zap.String("status", string(status)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pkgerrors.NotFoundError(fmt.Sprintf("lead %s", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	return lead, nil
}
