package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskman-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskman-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService)
	taskHandler := api.NewTaskHandler(app.taskService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/signin", authHandler.Signin)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
			r.Patch("/tasks/{id}/status", taskHandler.UpdateTaskStatus)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
