package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shiva/transit-catalogue/internal/model"
	"github.com/shiva/transit-catalogue/internal/reader"
	"github.com/shiva/transit-catalogue/internal/service"
)

const maxQueryBody = 1 << 20

// ─── Request/Response DTOs ──────────────────────────────────

// QueryResult is the outcome of one request in a POST /api/v1/queries batch.
// Exactly one of Bus, Stop, Error is set.
type QueryResult struct {
	Type    string            `json:"type"`
	Name    string            `json:"name"`
	Bus     *model.RouteStats `json:"bus,omitempty"`
	Stop    *model.StopInfo   `json:"stop,omitempty"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
}

// ─── QueryHandler ───────────────────────────────────────────

// QueryHandler answers batched bus and stop requests.
type QueryHandler struct {
	svc *service.QueryService
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(svc *service.QueryService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

// Answer handles POST /api/v1/queries
//
//	Request body:
//	[
//	  {"type": "Bus", "name": "256"},
//	  {"type": "Stop", "name": "Universam"}
//	]
//
// Responds 200 with one result per request, in order. A failing request is
// reported in its own result and does not affect the others.
func (h *QueryHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var reqs []reader.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBody)).Decode(&reqs); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid_request",
			Message: "body must be a JSON array of {\"type\", \"name\"} objects",
		})
		return
	}

	answers := h.svc.Answer(r.Context(), reqs)
	results := make([]QueryResult, 0, len(answers))
	for _, a := range answers {
		res := QueryResult{
			Type: a.Request.Type,
			Name: a.Request.Name,
			Bus:  a.Bus,
			Stop: a.Stop,
		}
		if a.Err != nil {
			_, res.Error = classify(a.Err)
			res.Message = a.Err.Error()
		}
		results = append(results, res)
	}

	writeJSON(w, http.StatusOK, map[string][]QueryResult{"results": results})
}
