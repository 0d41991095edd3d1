package entity

// Conversation roles accepted in conversation_history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation sent to the model.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content"`
}

// CareerPlanRequest is the body of POST /api/career-plan.
type CareerPlanRequest struct {
	Query               string        `json:"query" validate:"required"`
	ConversationHistory []ChatMessage `json:"conversation_history,omitempty" validate:"omitempty,dive"`
}

// CareerPlanResponse is returned when the model produced an answer.
type CareerPlanResponse struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}
