package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
)

// CreateUser inserts an account; the email is stored lowercased
func (c *Client) CreateUser(ctx context.Context, user *models.User) error {
	start := time.Now()
	operation := "createUser"

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	err := c.db.QueryRow(ctx, `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		user.ID, user.Email, user.Name, user.PasswordHash,
	).Scan(&user.CreatedAt)

	finish(operation, start, err)
	if isUniqueViolation(err) {
		return pkgerrors.ConflictError("user with this email")
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (c *Client) getUser(ctx context.Context, operation, where string, arg string) (*models.User, error) {
	start := time.Now()

	var user models.User
	err := c.db.QueryRow(ctx, `
		SELECT id::text, email, name, password_hash, created_at
		FROM users WHERE `+where, arg,
	).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)

	finish(operation, start, err)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pkgerrors.NotFoundError("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail fetches an account by email, case-insensitively
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return c.getUser(ctx, "getUserByEmail", "LOWER(email) = $1", strings.ToLower(strings.TrimSpace(email)))
}

// GetUserByID fetches an account by id
func (c *Client) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return c.getUser(ctx, "getUserByID", "id = $1", id)
}
