package catalogue

import "errors"

// ─── Errors ─────────────────────────────────────────────────

var (
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknownStop       = errors.New("unknown stop")
	ErrUnknownBus        = errors.New("unknown bus")
	ErrUndefinedDistance = errors.New("undefined road distance")
	ErrDegenerateRoute   = errors.New("degenerate route: zero geographic length")
	ErrEmptyRoute        = errors.New("route has no stops")
	ErrInvalidDistance   = errors.New("road distance must be non-negative")
)
