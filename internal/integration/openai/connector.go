package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/futig/career-plan-connector/internal/config"
	"github.com/futig/career-plan-connector/internal/entity"
	"github.com/futig/career-plan-connector/internal/integration/common"
	pkghttp "github.com/futig/career-plan-connector/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.OpenAIConfig
	model     llms.Model
	connector *pkghttp.Connector
	logger    *zap.Logger
}

// NewConnector builds an Azure OpenAI chat client for cfg.DeploymentName.
// Chat calls and the health probe share the same transport stack.
func NewConnector(cfg config.OpenAIConfig, logger *zap.Logger) (*Connector, error) {
	opts := common.HTTPOptions(cfg.HTTPClientConfig, cfg.Retry, cfg.APIKey)

	model, err := openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithBaseURL(cfg.Endpoint),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.DeploymentName),
		openai.WithAPIVersion(cfg.APIVersion),
		openai.WithHTTPClient(pkghttp.NewClient(opts...)),
	)
	if err != nil {
		return nil, fmt.Errorf("create azure openai client: %w", err)
	}

	return NewConnectorWithModel(cfg, model, logger), nil
}

// NewConnectorWithModel wraps an existing llms.Model.
func NewConnectorWithModel(cfg config.OpenAIConfig, model llms.Model, logger *zap.Logger) *Connector {
	return &Connector{
		config:    cfg,
		model:     model,
		connector: common.NewBaseConnector(cfg.Endpoint, cfg.HTTPClientConfig, cfg.Retry, cfg.APIKey, logger),
		logger:    logger,
	}
}

// Complete sends the conversation to the deployment and returns the first choice.
func (c *Connector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.TextParts(messageType(m.Role), m.Content))
	}

	ctxzap.Debug(ctx, "calling chat completion",
		zap.String("deployment", c.config.DeploymentName),
		zap.Int("messages", len(content)),
	)

	resp, err := c.model.GenerateContent(ctx, content,
		llms.WithTemperature(c.config.Temperature),
		llms.WithMaxTokens(c.config.MaxTokens),
	)
	if err != nil {
		if errors.Is(err, openai.ErrEmptyResponse) {
			return "", entity.ErrEmptyCompletion
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", entity.ErrEmptyCompletion
	}

	choice := resp.Choices[0]
	ctxzap.Info(ctx, "chat completion received",
		zap.Int("length", len(choice.Content)),
		zap.String("stop_reason", choice.StopReason),
	)

	return choice.Content, nil
}

// Ping lists the models of the resource, which checks endpoint and key without spending tokens
// GET {endpoint}/openai/models?api-version={v}
func (c *Connector) Ping(ctx context.Context) error {
	endpoint := "/openai/models?api-version=" + url.QueryEscape(c.config.APIVersion)
	if err := c.connector.DoRequest(ctx, http.MethodGet, endpoint, nil, nil); err != nil {
		return fmt.Errorf("ping azure openai: %w", err)
	}
	return nil
}

func messageType(role string) llms.ChatMessageType {
	switch role {
	case entity.RoleSystem:
		return llms.ChatMessageTypeSystem
	case entity.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
