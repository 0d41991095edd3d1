package careerplan

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers career plan routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/career-plan", h.GenerateCareerPlan)
	})
}
