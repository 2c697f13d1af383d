package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all capacity alert routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/alerts", func(r chi.Router) {
		r.Get("/", h.HandleGetAlerts)
		r.Get("/thresholds", h.HandleGetThresholds)
		r.Get("/resource/{id}/breakdown", h.HandleGetResourceBreakdown)
	})
}
