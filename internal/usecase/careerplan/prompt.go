package careerplan

import (
	"fmt"
	"strings"

	"github.com/futig/career-plan-connector/internal/entity"
)

const (
	systemInstructions = "You are a career development expert at Contoso. Create a helpful response based on " +
		"the user query and the provided context from Contoso documents. If context is available, prioritize it. " +
		"Do not invent information not present in the context."

	contextHeader  = "Relevant Context from Contoso Documents:"
	noDocuments    = "No specific documents found for the query."
	missingField   = "N/A"
	missingContent = "No content available."
	snippetSuffix  = "..."
)

// buildContext renders retrieved documents as the grounding block.
// Every snippet is cut to snippetLength runes and ends with "...".
func buildContext(docs []entity.RetrievedDocument, snippetLength int) string {
	if len(docs) == 0 {
		return noDocuments
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	b.WriteString("\n")

	for i, doc := range docs {
		fmt.Fprintf(&b, "\n--- Document %d (ID: %s, Title: %s) ---\n",
			i+1, orDefault(doc.DocumentID, missingField), orDefault(doc.Title, missingField))
		b.WriteString(truncate(orDefault(doc.Content, missingContent), snippetLength))
		b.WriteString(snippetSuffix)
		b.WriteString("\n")
	}

	return b.String()
}

// buildMessages orders the prompt: instructions, retrieved context, prior turns, then the query.
func buildMessages(query, contextBlock string, history []entity.ChatMessage) []entity.ChatMessage {
	messages := make([]entity.ChatMessage, 0, len(history)+3)
	messages = append(messages,
		entity.ChatMessage{Role: entity.RoleSystem, Content: systemInstructions},
		entity.ChatMessage{Role: entity.RoleSystem, Content: contextBlock},
	)
	messages = append(messages, history...)
	messages = append(messages, entity.ChatMessage{Role: entity.RoleUser, Content: "Query: " + query})

	return messages
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
