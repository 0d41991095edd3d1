package search

import (
	"context"
	"strings"

	"github.com/futig/career-plan-connector/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector - мок-реализация поискового коннектора для локального запуска
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

type mockDocument struct {
	doc      entity.RetrievedDocument
	keywords []string
}

var mockDocuments = []mockDocument{
	{
		doc: entity.RetrievedDocument{
			DocumentID: "contoso-pmp-001",
			Title:      "PMP Certification Guidance",
			Content: "Contoso encourages employees moving into project leadership to obtain the " +
				"Project Management Professional (PMP) certification. Candidates need 35 hours of " +
				"project management education and three years of experience leading projects.",
		},
		keywords: []string{"project", "pmp", "leader", "certification", "manager"},
	},
	{
		doc: entity.RetrievedDocument{
			DocumentID: "contoso-lead-002",
			Title:      "Emerging Leaders Program",
			Content: "The Emerging Leaders Program is a twelve month track covering stakeholder " +
				"communication, coaching, budgeting and decision making. Managers nominate candidates " +
				"each spring.",
		},
		keywords: []string{"leader", "leadership", "manager", "coaching", "promotion"},
	},
	{
		doc: entity.RetrievedDocument{
			DocumentID: "contoso-edu-003",
			Title:      "Tuition Assistance Policy",
			Content: "Contoso reimburses up to 5,250 USD per year for accredited courses and " +
				"certifications related to the employee's current or planned role.",
		},
		keywords: []string{"tuition", "course", "degree", "certification", "training", "skills"},
	},
}

// Search - мок поиска: возвращает документы, у которых совпало хотя бы одно ключевое слово
func (m *MockConnector) Search(ctx context.Context, query string, top int) (*entity.SearchResult, error) {
	ctxzap.Info(ctx, "[MOCK] searching index", zap.Int("top", top))

	q := strings.ToLower(query)
	result := &entity.SearchResult{}
	for _, d := range mockDocuments {
		hits := 0
		for _, kw := range d.keywords {
			if strings.Contains(q, kw) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}

		result.TotalCount++
		if len(result.Documents) < top {
			doc := d.doc
			doc.Score = float64(hits)
			result.Documents = append(result.Documents, doc)
		}
	}

	return result, nil
}

// Ping - мок проверки доступности
func (m *MockConnector) Ping(ctx context.Context) error {
	ctxzap.Debug(ctx, "[MOCK] pinging search index")
	return nil
}
