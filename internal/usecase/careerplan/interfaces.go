package careerplan

import (
	"context"

	"github.com/futig/career-plan-connector/internal/entity"
)

type SearchConnector interface {
	Search(ctx context.Context, query string, top int) (*entity.SearchResult, error)
}

type ModelConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage) (string, error)
}
