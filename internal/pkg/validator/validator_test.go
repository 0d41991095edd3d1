package validator

import (
	"testing"

	"github.com/futig/career-plan-connector/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCareerPlan(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     entity.CareerPlanRequest
		wantErr error
		message string
	}{
		{
			name: "valid with history",
			req: entity.CareerPlanRequest{
				Query: "How do I become a project leader?",
				ConversationHistory: []entity.ChatMessage{
					{Role: entity.RoleUser, Content: "Hi"},
					{Role: entity.RoleAssistant, Content: "Hello"},
				},
			},
		},
		{
			name:    "missing query",
			req:     entity.CareerPlanRequest{},
			wantErr: entity.ErrMissingField,
			message: "Missing required field: query",
		},
		{
			name: "unknown role",
			req: entity.CareerPlanRequest{
				Query: "q",
				ConversationHistory: []entity.ChatMessage{
					{Role: entity.RoleUser, Content: "a"},
					{Role: "robot", Content: "b"},
				},
			},
			wantErr: entity.ErrInvalidFormat,
			message: "Invalid conversation_history[1].role: must be one of system, user, assistant",
		},
		{
			name: "empty role",
			req: entity.CareerPlanRequest{
				Query:               "q",
				ConversationHistory: []entity.ChatMessage{{Content: "a"}},
			},
			wantErr: entity.ErrMissingField,
			message: "Missing required field: conversation_history[0].role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCareerPlan(&tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrBadRequest)
			assert.ErrorIs(t, err, tt.wantErr)

			var reqErr *entity.RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.message, reqErr.Message)
		})
	}
}
