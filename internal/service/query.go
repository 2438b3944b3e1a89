// Package service contains the query logic shared by the HTTP API and the
// command-line tool.
package service

import (
	"context"
	"errors"

	"github.com/shiva/transit-catalogue/internal/catalogue"
	"github.com/shiva/transit-catalogue/internal/model"
	"github.com/shiva/transit-catalogue/internal/reader"
	"github.com/shiva/transit-catalogue/internal/render"
)

// StatsCache stores computed route statistics. Implementations treat every
// failure as a miss; the service never depends on the cache for correctness.
type StatsCache interface {
	Get(ctx context.Context, version, bus string) (*model.RouteStats, bool)
	Set(ctx context.Context, version string, stats *model.RouteStats)
}

// ─── QueryService ───────────────────────────────────────────

// QueryService answers bus and stop queries against a fully loaded catalogue.
//
// version identifies the batch and geo formula the catalogue was built with
// (see CacheVersion) and namespaces cache entries, so results computed under
// one are never served for another.
type QueryService struct {
	cat     *catalogue.Catalogue
	cache   StatsCache
	version string
}

// CacheVersion names the cache namespace for a batch loaded under one
// great-circle formula. Geo length and curvature depend on both.
func CacheVersion(batch *model.Batch, geoFormula string) string {
	return batch.Fingerprint() + "-" + geoFormula
}

// NewQueryService creates a query service. cache may be nil.
func NewQueryService(cat *catalogue.Catalogue, cache StatsCache, version string) *QueryService {
	return &QueryService{cat: cat, cache: cache, version: version}
}

// BusStats returns the route statistics of a bus.
//
// Steps:
//  1. Try the cache (fast path).
//  2. On a miss, compute from the catalogue.
//  3. Store successful results only; errors are never cached.
func (s *QueryService) BusStats(ctx context.Context, number string) (*model.RouteStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx, s.version, number); ok {
			return stats, nil
		}
	}

	stats, err := s.cat.Stats(number)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, s.version, &stats)
	}
	return &stats, nil
}

// StopInfo returns the buses serving a stop.
func (s *QueryService) StopInfo(_ context.Context, name string) (*model.StopInfo, error) {
	buses, err := s.cat.BusesServing(name)
	if err != nil {
		return nil, err
	}
	return &model.StopInfo{Name: name, Buses: buses}, nil
}

// BusNumbers lists every registered bus.
func (s *QueryService) BusNumbers() []string { return s.cat.BusNumbers() }

// StopNames lists every registered stop.
func (s *QueryService) StopNames() []string { return s.cat.StopNames() }

// Counts returns the number of registered stops and buses.
func (s *QueryService) Counts() (stops, buses int) { return s.cat.Len() }

// Version returns the fingerprint of the loaded batch.
func (s *QueryService) Version() string { return s.version }

// ─── Batched Requests ───────────────────────────────────────

// Answer is the outcome of one request. Exactly one of Bus, Stop, Err is set.
type Answer struct {
	Request reader.Request
	Bus     *model.RouteStats
	Stop    *model.StopInfo
	Err     error
}

// Answer resolves requests in order. A failing request does not stop the
// ones after it.
func (s *QueryService) Answer(ctx context.Context, reqs []reader.Request) []Answer {
	out := make([]Answer, 0, len(reqs))
	for _, req := range reqs {
		a := Answer{Request: req}
		switch req.Type {
		case reader.KindBus:
			a.Bus, a.Err = s.BusStats(ctx, req.Name)
		case reader.KindStop:
			a.Stop, a.Err = s.StopInfo(ctx, req.Name)
		default:
			a.Err = reader.ValidateRequest(req)
		}
		out = append(out, a)
	}
	return out
}

// AnswerText resolves requests and renders each answer as one text line.
func (s *QueryService) AnswerText(ctx context.Context, reqs []reader.Request) []string {
	answers := s.Answer(ctx, reqs)
	lines := make([]string, 0, len(answers))
	for _, a := range answers {
		lines = append(lines, renderAnswer(a))
	}
	return lines
}

func renderAnswer(a Answer) string {
	name := a.Request.Name
	switch {
	case a.Request.Type == reader.KindBus && a.Err == nil:
		return render.BusStats(*a.Bus)
	case a.Request.Type == reader.KindStop && a.Err == nil:
		return render.StopBuses(*a.Stop)
	case errors.Is(a.Err, catalogue.ErrUnknownBus):
		return render.BusNotFound(name)
	case errors.Is(a.Err, catalogue.ErrUnknownStop):
		return render.StopNotFound(name)
	default:
		return render.Failed(a.Request.Type, name, a.Err)
	}
}
