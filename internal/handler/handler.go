// Package handler contains HTTP request handlers for the catalogue query API.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shiva/transit-catalogue/internal/catalogue"
	"github.com/shiva/transit-catalogue/internal/reader"
	"github.com/shiva/transit-catalogue/internal/service"
)

// NewRouter wires every catalogue route onto a fresh router.
//
//	GET  /health
//	GET  /api/v1/buses
//	GET  /api/v1/buses/{number}
//	GET  /api/v1/stops
//	GET  /api/v1/stops/{name}
//	POST /api/v1/queries
func NewRouter(svc *service.QueryService, health *HealthHandler) *mux.Router {
	busHandler := NewBusHandler(svc)
	stopHandler := NewStopHandler(svc)
	queryHandler := NewQueryHandler(svc)

	router := mux.NewRouter()
	router.Handle("/health", health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/buses", busHandler.ListBuses).Methods(http.MethodGet)
	api.HandleFunc("/buses/{number}", busHandler.GetBus).Methods(http.MethodGet)
	api.HandleFunc("/stops", stopHandler.ListStops).Methods(http.MethodGet)
	api.HandleFunc("/stops/{name}", stopHandler.GetStop).Methods(http.MethodGet)
	api.HandleFunc("/queries", queryHandler.Answer).Methods(http.MethodPost)

	return router
}

// ─── Error mapping ──────────────────────────────────────────

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// classify maps a query error to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, catalogue.ErrUnknownBus), errors.Is(err, catalogue.ErrUnknownStop):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, catalogue.ErrUndefinedDistance),
		errors.Is(err, catalogue.ErrDegenerateRoute),
		errors.Is(err, catalogue.ErrEmptyRoute):
		return http.StatusUnprocessableEntity, "unprocessable_route"
	case errors.Is(err, reader.ErrMalformedLine):
		return http.StatusBadRequest, "invalid_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError writes the response for a failed query.
func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		log.Printf("[handler] query error: %v", err)
		writeJSON(w, status, errorResponse{Error: code})
		return
	}
	writeJSON(w, status, errorResponse{Error: code, Message: err.Error()})
}

// writeJSON is a helper that writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[handler] encode response: %v", err)
	}
}
