// Package handlers provides HTTP handlers for capacity utilization alerts.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aristath/resourceplan/internal/modules/capacity"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles capacity alert HTTP requests
type Handler struct {
	service *capacity.Service
	log     zerolog.Logger
}

// NewHandler creates a new capacity alert handler
func NewHandler(service *capacity.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "capacity").Logger(),
	}
}

// HandleGetAlerts returns resources grouped into utilization alert categories
// GET /api/alerts?startDate=&endDate=&departmentFilter=&forwardLooking=
func (h *Handler) HandleGetAlerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	forwardLooking, err := parseForwardLooking(q.Get("forwardLooking"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.ComputeAlerts(capacity.AlertsQuery{
		StartDate:      q.Get("startDate"),
		EndDate:        q.Get("endDate"),
		Department:     q.Get("departmentFilter"),
		ForwardLooking: forwardLooking,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleGetResourceBreakdown returns a per-bucket utilization table for one resource
// GET /api/alerts/resource/{id}/breakdown?startDate=&endDate=&periodType=week|month|quarter
func (h *Handler) HandleGetResourceBreakdown(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")
	if resourceID == "" {
		h.writeError(w, http.StatusBadRequest, "Resource id is required")
		return
	}

	q := r.URL.Query()
	forwardLooking, err := parseForwardLooking(q.Get("forwardLooking"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	breakdown, err := h.service.ResourceBreakdown(resourceID, capacity.BreakdownQuery{
		StartDate:      q.Get("startDate"),
		EndDate:        q.Get("endDate"),
		PeriodType:     q.Get("periodType"),
		ForwardLooking: forwardLooking,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, breakdown)
}

// HandleGetThresholds returns the active categorization policy
func (h *Handler) HandleGetThresholds(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"thresholds":           h.service.Thresholds(),
		"currentDateAwareness": h.service.AwarenessPolicy(),
	})
}

// parseForwardLooking reads the optional forwardLooking flag; absent means true.
func parseForwardLooking(raw string) (bool, error) {
	if raw == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("forwardLooking must be a boolean")
	}
	return v, nil
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, capacity.ErrInvalidPeriod):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, capacity.ErrResourceNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, capacity.ErrUpstreamUnavailable):
		h.log.Error().Err(err).Msg("Planning store unavailable")
		h.writeError(w, http.StatusServiceUnavailable, "Resource data is currently unavailable")
	default:
		h.log.Error().Err(err).Msg("Failed to compute capacity alerts")
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
