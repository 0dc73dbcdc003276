package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Root(t *testing.T) {
	h := NewHealthHandler(&mocks.MockTaskService{}, "2.3.4")
	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body RootResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, RootResponse{
		Message: "Welcome to Task Management API",
		Version: "2.3.4",
		Docs:    "/docs",
		Health:  "/health",
	}, body)
}

func TestHealthHandler_Health(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		available bool
		database  string
	}{
		{"store available", true, "connected"},
		{"store unavailable", false, "disconnected"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(&mocks.MockTaskService{Available: tc.available}, "1.0.0")
			h.now = func() time.Time { return fixed }

			rec := httptest.NewRecorder()
			h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "healthy", body.Status)
			assert.Equal(t, "1.0.0", body.Version)
			assert.Equal(t, tc.database, body.Database)
			assert.True(t, fixed.Equal(body.Timestamp))
		})
	}
}
