package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ntokozodev/user-tasks-api/internal/api"
	apimiddleware "github.com/ntokozodev/user-tasks-api/internal/api/middleware"
	"github.com/ntokozodev/user-tasks-api/internal/platform/metrics"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)
	r.Use(apimiddleware.Metrics)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	meHandler := api.NewMeHandler(app.userService, app.taskService, app.logger)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/login", authHandler.Login)

		// User management
		r.Post("/users", userHandler.CreateUser)
		r.Get("/users", userHandler.ListUsers)
		r.Get("/users/{id}", userHandler.GetUser)
		r.Delete("/users/{id}", userHandler.DeleteUser)

		// Task endpoints, keyed by the owning user in the path
		r.Post("/users/{id}/tasks", taskHandler.CreateTask)
		r.Get("/users/{user_id}/tasks", taskHandler.ListTasks)
		r.Get("/users/{user_id}/tasks/{task_id}", taskHandler.GetTask)
		r.Put("/users/{user_id}/tasks/{task_id}", taskHandler.UpdateTask)
		r.Delete("/users/{user_id}/tasks/{task_id}", taskHandler.DeleteTask)

		// Token-scoped convenience routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/me", meHandler.GetMe)
			r.Get("/me/tasks", meHandler.ListMyTasks)
		})
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
