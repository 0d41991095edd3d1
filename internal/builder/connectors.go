package builder

import (
	"fmt"
	"strings"

	"github.com/futig/career-plan-connector/internal/config"
	"github.com/futig/career-plan-connector/internal/entity"
	"github.com/futig/career-plan-connector/internal/integration/openai"
	"github.com/futig/career-plan-connector/internal/integration/search"
	"github.com/futig/career-plan-connector/internal/usecase/careerplan"
	"github.com/futig/career-plan-connector/internal/usecase/health"
	"go.uber.org/zap"
)

type modelClient interface {
	careerplan.ModelConnector
	health.Prober
}

type searchClient interface {
	careerplan.SearchConnector
	health.Prober
}

// connectors holds the dependency clients. A nil client was not configured;
// the matching warning says why. Clients are only ever assigned concrete
// non-nil values, so nil checks downstream see a nil interface.
type connectors struct {
	model         modelClient
	search        searchClient
	modelWarning  string
	searchWarning string
}

func setupConnectors(cfg *config.Config, logger *zap.Logger) *connectors {
	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		return &connectors{
			model:  openai.NewMockConnector(logger),
			search: search.NewMockConnector(logger),
		}
	}

	logger.Info("Using real connectors for external services")
	c := &connectors{}

	if missing := cfg.OpenAICfg.MissingVars(); len(missing) > 0 {
		c.modelWarning = fmt.Sprintf("Azure OpenAI configuration missing in environment variables: %s.", strings.Join(missing, ", "))
		logger.Warn("Azure OpenAI client not initialized", zap.Strings("missing", missing))
	} else {
		model, err := openai.NewConnector(cfg.OpenAICfg, logger)
		if err != nil {
			c.modelWarning = fmt.Sprintf("Azure OpenAI client initialization error: %v", err)
			logger.Error("Azure OpenAI client not initialized", zap.Error(err))
		} else {
			c.model = model
			logger.Info("Azure OpenAI client configured",
				zap.String("endpoint", cfg.OpenAICfg.Endpoint),
				zap.String("deployment", cfg.OpenAICfg.DeploymentName),
			)
		}
	}

	if missing := cfg.SearchCfg.MissingVars(); len(missing) > 0 {
		c.searchWarning = fmt.Sprintf("Azure Search configuration missing in environment variables: %s. RAG features will be disabled.", strings.Join(missing, ", "))
		logger.Warn("Azure Search client not initialized", zap.Strings("missing", missing))
	} else {
		c.search = search.NewConnector(cfg.SearchCfg, logger)
		logger.Info("Azure Search client configured",
			zap.String("endpoint", cfg.SearchCfg.Endpoint),
			zap.String("index", cfg.SearchCfg.IndexName),
		)
	}

	return c
}

func (c *connectors) healthDependencies() []health.Dependency {
	return []health.Dependency{
		{Name: entity.ComponentOpenAI, Prober: c.model, Warning: c.modelWarning},
		{Name: entity.ComponentSearch, Prober: c.search, Warning: c.searchWarning},
	}
}
