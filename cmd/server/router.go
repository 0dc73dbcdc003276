package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/task-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	if app.metrics != nil {
		r.Use(app.metrics.Middleware(app.config.Metrics.Path))
	}

	taskHandler := api.NewTaskHandler(app.taskService, app.logger, app.config.Store.DefaultPageLimit)
	healthHandler := api.NewHealthHandler(app.taskService, app.config.Server.Version)

	// guard is a pass-through unless a JWT secret is configured
	guard := func(next http.Handler) http.Handler { return next }
	if app.jwtService != nil {
		guard = apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate
	}

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Get("/stats/summary", taskHandler.GetStats)
		r.Get("/{id}", taskHandler.GetTask)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Post("/", taskHandler.CreateTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})
	})

	if app.metrics != nil {
		r.Handle(app.config.Metrics.Path, app.metrics.Handler())
	}

	return r
}
