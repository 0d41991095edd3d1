package common

import (
	"github.com/futig/career-plan-connector/internal/config"
	pkgRetry "github.com/futig/career-plan-connector/internal/pkg/retry"
	pkgHTTP "github.com/futig/career-plan-connector/pkg/http"
	"go.uber.org/zap"
)

// Azure services read the key from this header.
const APIKeyHeader = "api-key"

// HTTPOptions builds client options for one Azure dependency. Retry is
// registered last so it wraps logging and auth, and every attempt is logged.
func HTTPOptions(cfg config.HTTPClientConfig, retryCfg pkgRetry.RetryConfig, apiKey string) []pkgHTTP.HttpOpts {
	return []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithTLSHandshakeTimeout(cfg.TLSHandshakeTimeout),
		pkgHTTP.WithMaxIdleConnsPerHost(cfg.MaxIdleConnsPerHost),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAPIKey(APIKeyHeader, apiKey),
		pkgHTTP.WithRetry(retryCfg.Attempts, retryCfg.ToRetryOptions()...),
	}
}

func NewBaseConnector(baseURL string, cfg config.HTTPClientConfig, retryCfg pkgRetry.RetryConfig, apiKey string, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: baseURL,
	}

	return pkgHTTP.NewConnector(connCfg, HTTPOptions(cfg, retryCfg, apiKey)...)
}
