package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormSubmission(t *testing.T) {
	client, mock := newMockClient(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO form_submissions").
		WithArgs("sub-1", "page-1", "user-1", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	sub := &models.FormSubmission{
		ID:            "sub-1",
		LandingPageID: "page-1",
		UserID:        "user-1",
		Request:       models.GenerationRequest{BusinessInfo: "Acme"},
	}
	require.NoError(t, client.CreateFormSubmission(context.Background(), sub))
	assert.Equal(t, now, sub.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFormSubmissions(t *testing.T) {
	client, mock := newMockClient(t)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM form_submissions").
		WithArgs("page-1", 20).
		WillReturnRows(pgxmock.NewRows([]string{"id", "landing_page_id", "user_id", "payload", "created_at"}).
			AddRow("sub-2", "page-1", "user-1", []byte(`{"businessInfo":"Acme v2","contactFields":["email"]}`), now).
			AddRow("sub-1", "page-1", "user-1", []byte(`{"businessInfo":"Acme"}`), now))

	subs, err := client.ListFormSubmissions(context.Background(), "page-1", 0)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Acme v2", subs[0].Request.BusinessInfo)
	assert.Equal(t, []string{"email"}, subs[0].Request.ContactFields)
}
