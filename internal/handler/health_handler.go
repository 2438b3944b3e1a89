package handler

import (
	"context"
	"net/http"
	"sort"

	"github.com/shiva/transit-catalogue/internal/service"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthResponse represents the /health endpoint response.
type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Stops    int               `json:"stops"`
	Buses    int               `json:"buses"`
	Services map[string]string `json:"services"`
}

// HealthHandler reports catalogue size and the state of optional
// dependencies (Redis, PostgreSQL).
type HealthHandler struct {
	svc    *service.QueryService
	checks map[string]HealthCheck
}

// NewHealthHandler creates a health handler. checks may be empty.
func NewHealthHandler(svc *service.QueryService, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{svc: svc, checks: checks}
}

// ServeHTTP handles GET /health. Any failing check yields 503 "degraded";
// the catalogue itself is in memory and always answers.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stops, buses := h.svc.Counts()
	resp := HealthResponse{
		Status:   "ok",
		Version:  h.svc.Version(),
		Stops:    stops,
		Buses:    buses,
		Services: make(map[string]string, len(h.checks)),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Services[name] = "unhealthy: " + err.Error()
		} else {
			resp.Services[name] = "healthy"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
