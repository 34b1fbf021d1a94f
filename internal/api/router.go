package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskboard-app/taskboard/internal/api/handlers"
	"github.com/taskboard-app/taskboard/internal/api/middleware"
	"github.com/taskboard-app/taskboard/internal/config"
	"github.com/taskboard-app/taskboard/internal/metrics"
	"github.com/taskboard-app/taskboard/internal/service"
	"github.com/taskboard-app/taskboard/internal/store"
)

const rateLimitWindow = 60 * time.Second

func NewRouter(services *service.Services, kv store.Store, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Session, cfg)
	dashboardHandler := handlers.NewDashboardHandler(services.Dashboard, services.Permission)
	memberHandler := handlers.NewMemberHandler(services.Member, services.Permission)
	todoHandler := handlers.NewTodoHandler(services.Todo, services.Permission)
	tagHandler := handlers.NewTagHandler(services.Tag, services.Permission)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes. Rate limits sit outside authentication so
		// unauthenticated floods are rejected before any token work.
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimit(kv, "register", 5, rateLimitWindow)).
				Post("/register", authHandler.Register)
			r.With(middleware.RateLimit(kv, "login", 10, rateLimitWindow)).
				Post("/login", authHandler.Login)
			r.With(middleware.RateLimit(kv, "verify", 30, rateLimitWindow)).
				Get("/verify", authHandler.Verify)
			r.Post("/refresh", authHandler.Refresh)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Session))
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Session))

			// Dashboard routes
			r.Route("/dashboards", func(r chi.Router) {
				r.Post("/", dashboardHandler.Create)
				r.Get("/", dashboardHandler.List)

				r.Route("/{dashboardID}", func(r chi.Router) {
					r.Get("/", dashboardHandler.Get)
					r.Put("/", dashboardHandler.Update)
					r.Delete("/", dashboardHandler.Delete)

					// Member routes
					r.Route("/members", func(r chi.Router) {
						r.Get("/", memberHandler.List)
						r.Post("/", memberHandler.Add)
						r.Put("/{memberID}", memberHandler.UpdateRole)
						r.Delete("/{memberID}", memberHandler.Remove)
					})

					// Todo routes
					r.Route("/todos", func(r chi.Router) {
						r.Get("/", todoHandler.List)
						r.Post("/", todoHandler.Create)
						r.Get("/search", todoHandler.Search)
						r.Get("/{todoID}", todoHandler.Get)
						r.Put("/{todoID}", todoHandler.Update)
						r.Delete("/{todoID}", todoHandler.Delete)
						r.Post("/{todoID}/{action}", todoHandler.Action)
					})

					// Tag routes
					r.Route("/tags", func(r chi.Router) {
						r.Get("/", tagHandler.List)
						r.Post("/", tagHandler.Create)
						r.Put("/{tagID}", tagHandler.Update)
						r.Delete("/{tagID}", tagHandler.Delete)
					})
				})
			})
		})
	})

	return r
}
