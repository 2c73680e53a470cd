package rest

import (
	"encoding/json"
	"net/http"

	"forzeit/infrastructure/di"
	"forzeit/interfaces/http/rest/handlers"
	"forzeit/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	c := rt.container
	cfg := c.Config
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	router.Use(c.ErrorHandler.Middleware)
	if cfg.EnableMetrics {
		router.Use(middleware.Metrics(c.Metrics))
	}

	if cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", handlers.CacheHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		c.ErrorHandler.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		c.ErrorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Probes and diagnostics
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if cfg.EnableMetrics {
		router.Handle("/metrics", c.Metrics.Handler())
	}
	router.Get("/cache/stats", handlers.NewCacheHandler(c.Insights, rt.logger).GetStats)

	if cfg.EnableTestTokens {
		authHandler := handlers.NewAuthHandler(c.JWTGenerator, c.Store, c.ErrorHandler, rt.logger)
		router.Post("/auth/test-token", authHandler.IssueTestToken)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(c.RateLimiter, c.ErrorHandler))
		r.Use(middleware.Authenticate(c.JWTValidator, c.Store, rt.logger))

		weekHandler := handlers.NewWeekHandler(c.QueryBus, c.ErrorHandler, rt.logger)
		insightsHandler := handlers.NewInsightsHandler(c.QueryBus, c.ErrorHandler, rt.logger)
		cardHandler := handlers.NewCardHandler(c.CommandBus, c.ErrorHandler, rt.logger)

		r.Route("/weeks/{weekID}", func(r chi.Router) {
			r.Get("/", weekHandler.GetWeek)
			r.Get("/insights", insightsHandler.GetInsights)
			r.Get("/sessions", weekHandler.ListWeekSessions)
		})
		r.Get("/users/{userID}/weeks", weekHandler.ListUserWeeks)

		r.Post("/cards", cardHandler.CreateCard)
		r.Patch("/cards/{cardID}/status", cardHandler.UpdateCardStatus)
	})

	return router
}

// healthCheck handles liveness probes
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready once the record store has been loaded
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	counts := rt.container.Store.Counts()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ready",
		"records": counts,
	}); err != nil {
		rt.logger.Error("Failed to encode readiness response", zap.Error(err))
	}
}
