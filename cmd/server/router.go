package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Skarbonka1/serwerfinal/internal/api"
	apiMiddleware "github.com/Skarbonka1/serwerfinal/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware stack.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if app.config.Server.RateLimitRequests > 0 {
		window := time.Duration(app.config.Server.RateLimitWindowMinutes) * time.Minute
		limiter := apiMiddleware.NewRateLimiter(app.config.Server.RateLimitRequests, window)
		r.Use(limiter.Limit)
	}

	// Handlers built from the application's services.
	authHandler := api.NewAuthHandler(app.userService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	commentHandler := api.NewCommentHandler(app.commentService, app.logger)
	statisticHandler := api.NewStatisticHandler(app.statisticService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public).
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Task endpoints. The static calendar route is registered
			// alongside the {id} routes; chi matches it first.
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/calendar", taskHandler.GetCalendar)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
			r.Put("/tasks/{id}/deadline", taskHandler.UpdateDeadline)
			r.Post("/tasks/{id}/publish", taskHandler.PublishTask)
			r.Get("/tasks/{id}/assignees", taskHandler.GetAssignees)

			// Comment endpoints.
			r.Post("/tasks/{id}/comments", commentHandler.AddComment)
			r.Get("/tasks/{id}/comments", commentHandler.ListComments)
			r.Delete("/comments/{commentId}", commentHandler.DeleteComment)

			// User endpoints.
			r.Get("/me", userHandler.Me)
			r.Get("/users", userHandler.ListUsers)
			r.Get("/users/{id}", userHandler.GetUser)
			r.Post("/users/fcm-token", userHandler.RegisterFCMToken)

			// Statistic endpoints.
			r.Post("/statistics", statisticHandler.CreateStatistic)
			r.Get("/statistics", statisticHandler.ListStatistics)
			r.Patch("/statistics/{id}", statisticHandler.UpdateStatistic)
			r.Delete("/statistics/{id}", statisticHandler.DeleteStatistic)
		})
	})

	return r
}
