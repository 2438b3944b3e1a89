package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shiva/transit-catalogue/internal/service"
)

// BusHandler serves bus listings and route statistics.
type BusHandler struct {
	svc *service.QueryService
}

// NewBusHandler creates a new bus handler.
func NewBusHandler(svc *service.QueryService) *BusHandler {
	return &BusHandler{svc: svc}
}

// ListBuses handles GET /api/v1/buses
//
// Returns every bus number in ascending order.
func (h *BusHandler) ListBuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"buses": h.svc.BusNumbers()})
}

// GetBus handles GET /api/v1/buses/{number}
//
// Returns 200 with route statistics, 404 for an unknown bus, or 422 when the
// statistics cannot be computed (missing road distance, zero geo length).
func (h *BusHandler) GetBus(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	stats, err := h.svc.BusStats(r.Context(), number)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
