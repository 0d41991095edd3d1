package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/futig/career-plan-connector/internal/config"
	"github.com/futig/career-plan-connector/internal/entity"
	"github.com/futig/career-plan-connector/internal/integration/common"
	pkghttp "github.com/futig/career-plan-connector/pkg/http"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	clientRequestIDHeader = "x-ms-client-request-id"
	selectFields          = "document_id,title,content_text"
)

type Connector struct {
	config    config.SearchConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.SearchConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.Endpoint, cfg.HTTPClientConfig, cfg.Retry, cfg.AdminKey, logger),
		config:    cfg,
		logger:    logger,
	}
}

type searchRequest struct {
	Search string `json:"search"`
	Top    int    `json:"top"`
	Count  bool   `json:"count"`
	Select string `json:"select"`
}

type searchResponse struct {
	Count int64            `json:"@odata.count"`
	Value []searchDocument `json:"value"`
}

// Search runs a full-text query against the index
// POST {endpoint}/indexes/{index}/docs/search?api-version={v}
func (c *Connector) Search(ctx context.Context, query string, top int) (*entity.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	requestID := uuid.NewString()
	ctxzap.Debug(ctx, "searching index",
		zap.String("index", c.config.IndexName),
		zap.Int("top", top),
		zap.String("client_request_id", requestID),
	)

	req := searchRequest{
		Search: query,
		Top:    top,
		Count:  true,
		Select: selectFields,
	}

	var resp searchResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.path("/docs/search"), req, &resp,
		pkghttp.WithHeader(clientRequestIDHeader, requestID),
	)
	if err != nil {
		return nil, fmt.Errorf("search index %s: %w", c.config.IndexName, err)
	}

	ctxzap.Info(ctx, "search completed",
		zap.Int("documents", len(resp.Value)),
		zap.Int64("total_count", resp.Count),
	)

	return &entity.SearchResult{
		Documents:  toEntityDocuments(resp.Value),
		TotalCount: resp.Count,
	}, nil
}

// Ping asks the index for its document count
// GET {endpoint}/indexes/{index}/docs/$count?api-version={v}
func (c *Connector) Ping(ctx context.Context) error {
	// the count comes back as text/plain, only the status matters here
	err := c.connector.DoRequest(ctx, http.MethodGet, c.path("/docs/$count"), nil, nil,
		pkghttp.WithHeader(clientRequestIDHeader, uuid.NewString()),
	)
	if err != nil {
		return fmt.Errorf("ping index %s: %w", c.config.IndexName, err)
	}
	return nil
}

func (c *Connector) path(suffix string) string {
	return fmt.Sprintf("/indexes/%s%s?api-version=%s",
		url.PathEscape(c.config.IndexName), suffix, url.QueryEscape(c.config.APIVersion))
}
