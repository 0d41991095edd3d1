package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/career-plan-connector/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector - мок-реализация модели: отвечает на основе переданного контекста
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// Complete - мок генерации ответа
func (m *MockConnector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "[MOCK] calling chat completion", zap.Int("messages", len(messages)))

	var query, contextBlock string
	for _, msg := range messages {
		switch {
		case msg.Role == entity.RoleUser && strings.HasPrefix(msg.Content, "Query: "):
			query = strings.TrimPrefix(msg.Content, "Query: ")
		case msg.Role == entity.RoleSystem && strings.Contains(msg.Content, "Contoso Documents"):
			contextBlock = msg.Content
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Career plan for: %s\n\n", query)
	b.WriteString("Based on the Contoso documents provided:\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\n1. Review the referenced programs with your manager.\n")
	b.WriteString("2. Set a 90-day learning goal.\n")
	b.WriteString("3. Track progress in your development plan.")

	return b.String(), nil
}

// Ping - мок проверки доступности
func (m *MockConnector) Ping(ctx context.Context) error {
	ctxzap.Debug(ctx, "[MOCK] pinging azure openai")
	return nil
}
