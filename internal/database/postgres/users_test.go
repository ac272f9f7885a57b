package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_LowercasesEmail(t *testing.T) {
	client, mock := newMockClient(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("user-1", "amy@example.com", "Amy", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	user := &models.User{ID: "user-1", Email: " Amy@Example.com ", Name: "Amy", PasswordHash: "hash"}
	require.NoError(t, client.CreateUser(context.Background(), user))
	assert.Equal(t, "amy@example.com", user.Email)
	assert.Equal(t, now, user.CreatedAt)
}

func TestCreateUser_Duplicate(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("user-2", "amy@example.com", "", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := client.CreateUser(context.Background(), &models.User{ID: "user-2", Email: "amy@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, pkgerrors.ErrConflict)
}

func TestGetUserByEmail(t *testing.T) {
	client, mock := newMockClient(t)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM users WHERE LOWER").
		WithArgs("amy@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
			AddRow("user-1", "amy@example.com", "Amy", "hash", now))

	user, err := client.GetUserByEmail(context.Background(), "AMY@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	mock.ExpectQuery("FROM users WHERE").
		WithArgs("user-9").
		WillReturnError(pgx.ErrNoRows)

	_, err = client.GetUserByID(context.Background(), "user-9")
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}
