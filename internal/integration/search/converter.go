package search

import "github.com/futig/career-plan-connector/internal/entity"

// searchDocument is one element of the index response "value" array.
type searchDocument struct {
	Score       float64 `json:"@search.score"`
	DocumentID  string  `json:"document_id"`
	Title       string  `json:"title"`
	ContentText string  `json:"content_text"`
}

func toEntityDocuments(docs []searchDocument) []entity.RetrievedDocument {
	out := make([]entity.RetrievedDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.RetrievedDocument{
			DocumentID: d.DocumentID,
			Title:      d.Title,
			Content:    d.ContentText,
			Score:      d.Score,
		})
	}
	return out
}
