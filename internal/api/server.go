package api

import (
	"net/http"
	"time"

	careerplanapi "github.com/futig/career-plan-connector/internal/api/careerplan"
	"github.com/futig/career-plan-connector/internal/api/docs"
	healthapi "github.com/futig/career-plan-connector/internal/api/health"
	"github.com/futig/career-plan-connector/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	careerPlanHandler *careerplanapi.Handler,
	healthHandler *healthapi.Handler,
	cfg RouterConfig,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                   // Recover from panics
	r.Use(chimiddleware.RequestID)                   // Add request ID
	r.Use(chimiddleware.RealIP)                      // Trust X-Forwarded-For from the front door
	r.Use(middleware.Logger(logger))                 // Log requests
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))   // Handle CORS
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout)) // Default timeout

	// Service info and health check endpoints
	healthapi.RegisterRoutes(r, healthHandler)

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	careerplanapi.RegisterRoutes(r, careerPlanHandler)

	return r
}
