package health

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers service info and health routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.ServiceInfo)
	r.Get("/health", h.Health)
}
