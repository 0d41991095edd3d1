package entity

type ComponentStatus string

const (
	StatusHealthy   ComponentStatus = "healthy"
	StatusUnhealthy ComponentStatus = "unhealthy"
	StatusUnknown   ComponentStatus = "unknown"
	StatusDegraded  ComponentStatus = "degraded"
)

// Component names reported by /health.
const (
	ComponentWebapp = "webapp"
	ComponentOpenAI = "openai"
	ComponentSearch = "search"
)

// Environment variable presence markers. Values are never reported.
const (
	EnvSet    = "SET"
	EnvNotSet = "NOT SET"
)

type HealthResponse struct {
	Status               ComponentStatus            `json:"status"`
	Components           map[string]ComponentStatus `json:"components,omitempty"`
	EnvironmentVariables map[string]string          `json:"environment_variables,omitempty"`
	Warnings             string                     `json:"warnings,omitempty"`
	Instance             string                     `json:"instance"`
	Message              string                     `json:"message,omitempty"`
}

type ServiceInfoResponse struct {
	Service              string            `json:"service"`
	Status               string            `json:"status"`
	EnvironmentVariables map[string]string `json:"environment_variables"`
}
