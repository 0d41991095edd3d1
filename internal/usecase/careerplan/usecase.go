package careerplan

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/career-plan-connector/internal/entity"
	"github.com/futig/career-plan-connector/internal/pkg/logger"
	"github.com/futig/career-plan-connector/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Config struct {
	TopK          int
	SnippetLength int
}

// CareerPlanUsecase answers career questions grounded on indexed documents
type CareerPlanUsecase struct {
	search    SearchConnector
	model     ModelConnector
	validator *validator.Validator
	cfg       Config
	logger    *zap.Logger
}

// NewUsecase creates a new career plan use case. A nil connector means the
// dependency was not configured; requests then fail with 503.
func NewUsecase(
	search SearchConnector,
	model ModelConnector,
	validator *validator.Validator,
	cfg Config,
	logger *zap.Logger,
) *CareerPlanUsecase {
	return &CareerPlanUsecase{
		search:    search,
		model:     model,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// GeneratePlan validates req, retrieves context for the query and asks the model for an answer.
// Errors are *entity.RequestError.
func (uc *CareerPlanUsecase) GeneratePlan(ctx context.Context, req *entity.CareerPlanRequest) (string, error) {
	ctx = logger.WithAction(ctx, "generate_career_plan")

	req.Query = strings.TrimSpace(req.Query)
	if err := uc.validator.ValidateCareerPlan(req); err != nil {
		ctxzap.Warn(ctx, "invalid career plan request", zap.Error(err))
		return "", err
	}

	if uc.model == nil {
		ctxzap.Error(ctx, "model client not available")
		return "", entity.NewServiceUnavailable(entity.MessageOpenAIUnavailable, entity.ErrDependencyNotConfigured)
	}
	if uc.search == nil {
		ctxzap.Error(ctx, "search client not available")
		return "", entity.NewServiceUnavailable(entity.MessageSearchUnavailable, entity.ErrDependencyNotConfigured)
	}

	ctxzap.Info(ctx, "retrieving documents",
		zap.Int("query_length", len(req.Query)),
		zap.Int("history_length", len(req.ConversationHistory)),
	)

	result, err := uc.search.Search(ctx, req.Query, uc.cfg.TopK)
	if err != nil {
		ctxzap.Error(ctx, "document retrieval failed", zap.Error(err))
		return "", entity.NewInternal(fmt.Errorf("retrieve documents: %w", err))
	}

	ctxzap.Info(ctx, "documents retrieved",
		zap.Int("used", len(result.Documents)),
		zap.Int64("total", result.TotalCount),
	)

	messages := buildMessages(req.Query, buildContext(result.Documents, uc.cfg.SnippetLength), req.ConversationHistory)

	answer, err := uc.model.Complete(ctx, messages)
	if err != nil {
		ctxzap.Error(ctx, "chat completion failed", zap.Error(err))
		return "", entity.NewInternal(fmt.Errorf("complete chat: %w", err))
	}
	if strings.TrimSpace(answer) == "" {
		ctxzap.Error(ctx, "chat completion is empty")
		return "", entity.NewInternal(entity.ErrEmptyCompletion)
	}

	ctxzap.Info(ctx, "career plan generated", zap.Int("response_length", len(answer)))

	return answer, nil
}
