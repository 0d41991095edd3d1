package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/career-plan-connector/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr          string        `env:"SERVER_ADDR" envDefault:":8000"`
	Port                string        `env:"PORT"`
	ReadTimeout         time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout        time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"90s"`
	IdleTimeout         time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout     time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"75s"`
	MaxRequestBodyBytes int64         `env:"MAX_REQUEST_BODY_BYTES" envDefault:"1048576"`
	CORSAllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// External service configurations
	OpenAICfg OpenAIConfig `envPrefix:"AZURE_OPENAI_"`
	SearchCfg SearchConfig `envPrefix:"AZURE_SEARCH_"`

	HealthCfg HealthConfig `envPrefix:"HEALTH_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Set by the hosting platform
	InstanceID string `env:"WEBSITE_INSTANCE_ID" envDefault:"unknown"`

	// Environment (set from flag, not from env var)
	Environment string
}

type OpenAIConfig struct {
	HTTPClientConfig
	Endpoint       string               `env:"ENDPOINT"`
	APIKey         string               `env:"API_KEY"`
	DeploymentName string               `env:"DEPLOYMENT_NAME" envDefault:"gpt-4o"`
	APIVersion     string               `env:"API_VERSION" envDefault:"2024-10-21"`
	Temperature    float64              `env:"TEMPERATURE" envDefault:"0.5"`
	MaxTokens      int                  `env:"MAX_TOKENS" envDefault:"1000"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type SearchConfig struct {
	HTTPClientConfig
	Endpoint      string               `env:"SERVICE_ENDPOINT"`
	AdminKey      string               `env:"ADMIN_KEY"`
	IndexName     string               `env:"INDEX_NAME"`
	APIVersion    string               `env:"API_VERSION" envDefault:"2023-11-01"`
	TopK          int                  `env:"TOP_K" envDefault:"3"`
	SnippetLength int                  `env:"SNIPPET_LENGTH" envDefault:"500"`
	Retry         pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// HTTPClientConfig and the retry settings have no envDefault tags: the
// defaults are set in defaultConfig before parsing.
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT"`
	TLSHandshakeTimeout   time.Duration `env:"TLS_HANDSHAKE_TIMEOUT"`
	MaxIdleConnsPerHost   int           `env:"MAX_IDLE_CONNS_PER_HOST"`
}

func defaultHTTPClientConfig(timeout time.Duration) HTTPClientConfig {
	return HTTPClientConfig{
		RequestTimeout:        timeout,
		ConnTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: timeout,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   10,
	}
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.OpenAICfg.HTTPClientConfig = defaultHTTPClientConfig(60 * time.Second)
	cfg.SearchCfg.HTTPClientConfig = defaultHTTPClientConfig(10 * time.Second)
	cfg.OpenAICfg.Retry = *pkgRetry.DefaultRetryConfig()
	cfg.SearchCfg.Retry = *pkgRetry.DefaultRetryConfig()
	return cfg
}

// HealthConfig controls /health dependency probing.
type HealthConfig struct {
	ProbeEnabled bool          `env:"PROBE_ENABLED" envDefault:"false"`
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT" envDefault:"5s"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"30s"`
}

// Variable is one dependency environment variable as seen at startup.
type Variable struct {
	Name   string
	Value  string
	Secret bool
}

// Variables lists the dependency variables in a stable order.
func (c *Config) Variables() []Variable {
	return []Variable{
		{Name: "AZURE_OPENAI_ENDPOINT", Value: c.OpenAICfg.Endpoint},
		{Name: "AZURE_OPENAI_API_KEY", Value: c.OpenAICfg.APIKey, Secret: true},
		{Name: "AZURE_OPENAI_DEPLOYMENT_NAME", Value: c.OpenAICfg.DeploymentName},
		{Name: "AZURE_OPENAI_API_VERSION", Value: c.OpenAICfg.APIVersion},
		{Name: "AZURE_SEARCH_SERVICE_ENDPOINT", Value: c.SearchCfg.Endpoint},
		{Name: "AZURE_SEARCH_ADMIN_KEY", Value: c.SearchCfg.AdminKey, Secret: true},
		{Name: "AZURE_SEARCH_INDEX_NAME", Value: c.SearchCfg.IndexName},
	}
}

// Presence reports SET / NOT SET for every non-secret dependency variable.
func (c *Config) Presence() map[string]string {
	out := make(map[string]string)
	for _, v := range c.Variables() {
		if v.Secret {
			continue
		}
		out[v.Name] = presence(v.Value)
	}
	return out
}

func presence(value string) string {
	if strings.TrimSpace(value) == "" {
		return "NOT SET"
	}
	return "SET"
}

// MissingVars lists the variables the model client cannot start without.
func (c OpenAIConfig) MissingVars() []string {
	return missing(
		Variable{Name: "AZURE_OPENAI_ENDPOINT", Value: c.Endpoint},
		Variable{Name: "AZURE_OPENAI_API_KEY", Value: c.APIKey},
		Variable{Name: "AZURE_OPENAI_DEPLOYMENT_NAME", Value: c.DeploymentName},
	)
}

// MissingVars lists the variables the search client cannot start without.
func (c SearchConfig) MissingVars() []string {
	return missing(
		Variable{Name: "AZURE_SEARCH_SERVICE_ENDPOINT", Value: c.Endpoint},
		Variable{Name: "AZURE_SEARCH_ADMIN_KEY", Value: c.AdminKey},
		Variable{Name: "AZURE_SEARCH_INDEX_NAME", Value: c.IndexName},
	)
}

func missing(vars ...Variable) []string {
	var out []string
	for _, v := range vars {
		if strings.TrimSpace(v.Value) == "" {
			out = append(out, v.Name)
		}
	}
	return out
}

// ListenAddr prefers the platform-provided PORT over SERVER_ADDR.
func (c *Config) ListenAddr() string {
	if c.Port != "" {
		return ":" + strings.TrimPrefix(c.Port, ":")
	}
	return c.ServerAddr
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load reads the env file for environment (if present) and parses the process environment.
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := defaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment
	normalize(cfg)

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func normalize(cfg *Config) {
	cfg.OpenAICfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.OpenAICfg.Endpoint), "/")
	cfg.SearchCfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.SearchCfg.Endpoint), "/")
	cfg.OpenAICfg.APIKey = strings.TrimSpace(cfg.OpenAICfg.APIKey)
	cfg.SearchCfg.AdminKey = strings.TrimSpace(cfg.SearchCfg.AdminKey)
	cfg.SearchCfg.IndexName = strings.TrimSpace(cfg.SearchCfg.IndexName)
	if cfg.InstanceID == "" {
		cfg.InstanceID = "unknown"
	}
}

func validateConfig(cfg *Config) error {
	var errs []error

	if cfg.OpenAICfg.Temperature < 0 || cfg.OpenAICfg.Temperature > 2 {
		errs = append(errs, fmt.Errorf("AZURE_OPENAI_TEMPERATURE must be between 0 and 2, got %v", cfg.OpenAICfg.Temperature))
	}

	if cfg.OpenAICfg.MaxTokens < 1 || cfg.OpenAICfg.MaxTokens > 32768 {
		errs = append(errs, fmt.Errorf("AZURE_OPENAI_MAX_TOKENS must be between 1 and 32768, got %d", cfg.OpenAICfg.MaxTokens))
	}

	if cfg.SearchCfg.TopK < 1 || cfg.SearchCfg.TopK > 50 {
		errs = append(errs, fmt.Errorf("AZURE_SEARCH_TOP_K must be between 1 and 50, got %d", cfg.SearchCfg.TopK))
	}

	if cfg.SearchCfg.SnippetLength < 1 {
		errs = append(errs, fmt.Errorf("AZURE_SEARCH_SNIPPET_LENGTH must be positive, got %d", cfg.SearchCfg.SnippetLength))
	}

	if cfg.OpenAICfg.Retry.Attempts < 1 || cfg.OpenAICfg.Retry.Attempts > 10 {
		errs = append(errs, fmt.Errorf("AZURE_OPENAI_RETRY_ATTEMPTS must be between 1 and 10, got %d", cfg.OpenAICfg.Retry.Attempts))
	}

	if cfg.SearchCfg.Retry.Attempts < 1 || cfg.SearchCfg.Retry.Attempts > 10 {
		errs = append(errs, fmt.Errorf("AZURE_SEARCH_RETRY_ATTEMPTS must be between 1 and 10, got %d", cfg.SearchCfg.Retry.Attempts))
	}

	if cfg.OpenAICfg.MaxIdleConnsPerHost < 1 || cfg.SearchCfg.MaxIdleConnsPerHost < 1 {
		errs = append(errs, fmt.Errorf("AZURE_*_MAX_IDLE_CONNS_PER_HOST must be positive, got %d and %d",
			cfg.OpenAICfg.MaxIdleConnsPerHost, cfg.SearchCfg.MaxIdleConnsPerHost))
	}

	if cfg.MaxRequestBodyBytes < 1 {
		errs = append(errs, fmt.Errorf("MAX_REQUEST_BODY_BYTES must be positive, got %d", cfg.MaxRequestBodyBytes))
	}

	if cfg.HealthCfg.ProbeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HEALTH_PROBE_TIMEOUT must be positive, got %s", cfg.HealthCfg.ProbeTimeout))
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"REQUEST_TIMEOUT", cfg.RequestTimeout},
		{"SERVER_READ_TIMEOUT", cfg.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", cfg.WriteTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout},
		{"AZURE_OPENAI_TIMEOUT", cfg.OpenAICfg.RequestTimeout},
		{"AZURE_SEARCH_TIMEOUT", cfg.SearchCfg.RequestTimeout},
		{"AZURE_OPENAI_TLS_HANDSHAKE_TIMEOUT", cfg.OpenAICfg.TLSHandshakeTimeout},
		{"AZURE_SEARCH_TLS_HANDSHAKE_TIMEOUT", cfg.SearchCfg.TLSHandshakeTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", d.name, d.value))
		}
	}

	return errors.Join(errs...)
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
