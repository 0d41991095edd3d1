package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/career-plan-connector/internal/config"
	"github.com/futig/career-plan-connector/internal/entity"
	"github.com/futig/career-plan-connector/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

func testConfig(endpoint string) config.OpenAIConfig {
	return config.OpenAIConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        2 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: 2 * time.Second,
		},
		Endpoint:       endpoint,
		APIKey:         "model-key",
		DeploymentName: "gpt-4o",
		APIVersion:     "2024-10-21",
		Temperature:    0.5,
		MaxTokens:      1000,
		Retry:          retry.RetryConfig{Attempts: 2, Delay: time.Millisecond, MaxDelay: 5 * time.Millisecond},
	}
}

func TestConnector_Complete_AzureWireFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-10-21", r.URL.Query().Get("api-version"))
		assert.Equal(t, "model-key", r.Header.Get("api-key"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var fields map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &fields))
		assert.NotContains(t, fields, "max_tokens")
		assert.JSONEq(t, "1000", string(fields["max_completion_tokens"]))

		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content any    `json:"content"`
			} `json:"messages"`
			Temperature float64 `json:"temperature"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		require.Len(t, body.Messages, 3)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "assistant", body.Messages[1].Role)
		assert.Equal(t, "user", body.Messages[2].Role)
		assert.Equal(t, 0.5, body.Temperature)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Start with the PMP."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer server.Close()

	c, err := NewConnector(testConfig(server.URL), zap.NewNop())
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: "You are a career expert."},
		{Role: entity.RoleAssistant, Content: "Earlier answer"},
		{Role: entity.RoleUser, Content: "Query: become a project leader"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Start with the PMP.", out)
}

func TestConnector_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/openai/models", r.URL.Path)
		assert.Equal(t, "model-key", r.Header.Get("api-key"))
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	c, err := NewConnector(testConfig(server.URL), zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, c.Ping(context.Background()))
}

type fakeModel struct {
	resp *llms.ContentResponse
	err  error
	got  []llms.MessageContent
	opts llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.got = messages
	for _, o := range options {
		o(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestConnector_Complete_MapsRolesAndOptions(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "answer"}}}}
	c := NewConnectorWithModel(testConfig("http://unused"), model, zap.NewNop())

	out, err := c.Complete(context.Background(), []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: "s"},
		{Role: entity.RoleUser, Content: "u"},
		{Role: entity.RoleAssistant, Content: "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "answer", out)

	require.Len(t, model.got, 3)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.got[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.got[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, model.got[2].Role)
	assert.Equal(t, 0.5, model.opts.Temperature)
	assert.Equal(t, 1000, model.opts.MaxTokens)
}

func TestConnector_Complete_EmptyCompletion(t *testing.T) {
	for name, resp := range map[string]*llms.ContentResponse{
		"no choices":  {},
		"blank text":  {Choices: []*llms.ContentChoice{{Content: "  "}}},
		"nil payload": nil,
	} {
		t.Run(name, func(t *testing.T) {
			c := NewConnectorWithModel(testConfig("http://unused"), &fakeModel{resp: resp}, zap.NewNop())
			_, err := c.Complete(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "q"}})
			assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
		})
	}
}

func TestConnector_Complete_ModelError(t *testing.T) {
	boom := errors.New("boom")
	c := NewConnectorWithModel(testConfig("http://unused"), &fakeModel{err: boom}, zap.NewNop())

	_, err := c.Complete(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "q"}})
	assert.ErrorIs(t, err, boom)
}

func TestMockConnector_EchoesContext(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	out, err := m.Complete(context.Background(), []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: "Relevant Context from Contoso Documents:\nPMP"},
		{Role: entity.RoleUser, Content: "Query: lead projects"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "lead projects")
	assert.Contains(t, out, "PMP")
}
