package entity

// RetrievedDocument is one hit returned by the search index.
type RetrievedDocument struct {
	DocumentID string
	Title      string
	Content    string
	Score      float64
}

// SearchResult holds the documents found for a query and the total match count.
type SearchResult struct {
	Documents  []RetrievedDocument
	TotalCount int64
}
