package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// getPathID extracts a task id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", domain.ErrInvalidID)
	}
	return id, nil
}

// parseListOptions reads skip, limit, completed and priority from the
// query string. An absent limit uses defaultLimit. An unknown priority is
// accepted and simply matches no tasks.
func parseListOptions(r *http.Request, defaultLimit int) (store.ListOptions, error) {
	q := r.URL.Query()
	opts := store.ListOptions{Limit: defaultLimit}

	if raw := q.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return opts, domain.NewValidationError("skip", "must be an integer", domain.ErrValidation)
		}
		opts.Skip = skip
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return opts, domain.NewValidationError("limit", "must be an integer", domain.ErrValidation)
		}
		opts.Limit = limit
	}

	if raw := q.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, domain.NewValidationError("completed", "must be a boolean", domain.ErrValidation)
		}
		opts.Completed = &completed
	}

	if raw := q.Get("priority"); raw != "" {
		p := domain.Priority(raw)
		opts.Priority = &p
	}

	return opts, nil
}
