package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
)

type titleOnly struct {
	Title string `json:"title" validate:"required,max=3"`
}

func TestMapErrorToStatusCode(t *testing.T) {
	verr := shared.ValidateRequest(&titleOnly{Title: "toolong"})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"service not found", service.ErrTaskNotFound, http.StatusNotFound},
		{"store not found", fmt.Errorf("lookup: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"domain validation", domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyTitle), http.StatusUnprocessableEntity},
		{"validator errors", verr, http.StatusUnprocessableEntity},
		{"empty body", shared.ErrEmptyBody, http.StatusUnprocessableEntity},
		{"invalid entity", store.ErrInvalidEntity, http.StatusUnprocessableEntity},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	verr := shared.ValidateRequest(&titleOnly{Title: "toolong"})

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"not found", service.ErrTaskNotFound, "Task not found"},
		{"validator errors", verr, "Invalid title: too long"},
		{"domain validation", domain.NewValidationError("priority", "is not a known priority", domain.ErrInvalidPriority), "Invalid priority: is not a known priority"},
		{"bare validation sentinel", domain.ErrValidation, "Validation error"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"leaky unknown error", errors.New("password=hunter22 at /srv/app"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))

	err := shared.ValidateRequest(&titleOnly{})
	assert.Equal(t, "Invalid title: required field", SanitizeValidationError(err))
}

func TestHandleAPIError(t *testing.T) {
	t.Run("fallback replaces generic 500 message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil), errors.New("boom"), "Failed to list tasks")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"detail":"Failed to list tasks"`)
	})

	t.Run("fallback ignored for mapped errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/tasks/1", nil), service.ErrTaskNotFound, "Failed to get task")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"detail":"Task not found"`)
	})
}
