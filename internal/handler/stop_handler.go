package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shiva/transit-catalogue/internal/service"
)

// StopHandler serves stop listings and per-stop bus lists.
type StopHandler struct {
	svc *service.QueryService
}

// NewStopHandler creates a new stop handler.
func NewStopHandler(svc *service.QueryService) *StopHandler {
	return &StopHandler{svc: svc}
}

// ListStops handles GET /api/v1/stops
func (h *StopHandler) ListStops(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"stops": h.svc.StopNames()})
}

// GetStop handles GET /api/v1/stops/{name}
//
// A known stop with no buses returns 200 with an empty list.
func (h *StopHandler) GetStop(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	info, err := h.svc.StopInfo(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
