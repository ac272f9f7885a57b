package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: InvalidInputError("pageId", "is required"), want: http.StatusBadRequest},
		{name: "unauthorized", err: ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "access denied", err: AccessDeniedError("not the page owner"), want: http.StatusForbidden},
		{name: "not found", err: NotFoundError("landing page"), want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", NotFoundError("lead")), want: http.StatusNotFound},
		{name: "conflict", err: ConflictError("user"), want: http.StatusConflict},
		{name: "upstream", err: UpstreamError("openai", errors.New("boom")), want: http.StatusInternalServerError},
		{name: "plain", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestUpstreamError_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := UpstreamError("openai", cause)

	assert.True(t, Is(err, ErrUpstream))
	assert.True(t, Is(err, cause))
	assert.Contains(t, err.Error(), "openai")
}
