package builder

import (
	"fmt"
	"net/http"

	"github.com/futig/career-plan-connector/internal/api"
	careerplanapi "github.com/futig/career-plan-connector/internal/api/careerplan"
	healthapi "github.com/futig/career-plan-connector/internal/api/health"
	"github.com/futig/career-plan-connector/internal/config"
	"github.com/futig/career-plan-connector/internal/pkg/logger"
	"github.com/futig/career-plan-connector/internal/pkg/validator"
	"github.com/futig/career-plan-connector/internal/usecase/careerplan"
	"github.com/futig/career-plan-connector/internal/usecase/health"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	return NewApp(cfg, logger), nil
}

// NewApp wires every component from an already loaded configuration.
func NewApp(cfg *config.Config, logger *zap.Logger) *App {
	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ListenAddr()),
	)

	logEnvironment(cfg, logger)

	// Initialize external service connectors (with mock support)
	conns := setupConnectors(cfg, logger)

	// Initialize use cases
	careerPlanUC := careerplan.NewUsecase(
		conns.search,
		conns.model,
		validator.New(),
		careerplan.Config{
			TopK:          cfg.SearchCfg.TopK,
			SnippetLength: cfg.SearchCfg.SnippetLength,
		},
		logger,
	)

	healthUC := health.NewUsecase(
		conns.healthDependencies(),
		cfg.Presence(),
		health.Config{
			ProbeEnabled: cfg.HealthCfg.ProbeEnabled,
			ProbeTimeout: cfg.HealthCfg.ProbeTimeout,
			CacheTTL:     cfg.HealthCfg.CacheTTL,
			InstanceID:   cfg.InstanceID,
		},
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	careerPlanHandler := careerplanapi.NewHandler(careerPlanUC, cfg.MaxRequestBodyBytes)
	healthHandler := healthapi.NewHandler(healthUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(careerPlanHandler, healthHandler, api.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
		zap.Bool("mocks", cfg.EnableMocks),
	)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

func setupLogger(level string) (*zap.Logger, error) {
	return logger.New(level)
}

// logEnvironment prints every dependency variable. Secrets are reported as SET / NOT SET only.
func logEnvironment(cfg *config.Config, logger *zap.Logger) {
	for _, v := range cfg.Variables() {
		value := v.Value
		if v.Secret || value == "" {
			value = presenceLabel(value)
		}
		logger.Info("Environment variable", zap.String("name", v.Name), zap.String("value", value))
	}
}

func presenceLabel(value string) string {
	if value == "" {
		return "NOT SET"
	}
	return "SET"
}
