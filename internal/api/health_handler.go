package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/service"
)

// HealthHandler serves the root and health endpoints.
type HealthHandler struct {
	taskService service.TaskService
	version     string
	now         func() time.Time
}

// NewHealthHandler creates a HealthHandler reporting version.
func NewHealthHandler(taskService service.TaskService, version string) *HealthHandler {
	return &HealthHandler{
		taskService: taskService,
		version:     version,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Root handles GET / requests
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, RootResponse{
		Message: "Welcome to Task Management API",
		Version: h.version,
		Docs:    "/docs",
		Health:  "/health",
	})
}

// Health handles GET /health requests. The service reports healthy while
// the process is up; the database field reflects store availability.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	database := "disconnected"
	if h.taskService.IsAvailable(r.Context()) {
		database = "connected"
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now(),
		Version:   h.version,
		Database:  database,
	})
}
