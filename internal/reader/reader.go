// Package reader turns catalogue input into model definitions.
//
// Two batch formats are supported: the line format
//
//	13
//	Stop Tolstopaltsevo: 55.611087, 37.20829, 3900m to Marushkino
//	Bus 256: Biryulyovo Zapadnoye > Biryusinka > Biryulyovo Zapadnoye
//	Bus 750: Tolstopaltsevo - Marushkino - Rasskazovka
//
// where '>' separates the stops of a circular route and '-' those of a
// linear one, and a YAML document (see DecodeYAML). Query requests use the
// line format only: a count followed by "Bus <number>" / "Stop <name>" lines.
package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shiva/transit-catalogue/internal/model"
)

// ErrMalformedLine is returned for any input line that cannot be parsed.
var ErrMalformedLine = errors.New("malformed line")

// Request kinds.
const (
	KindBus  = "Bus"
	KindStop = "Stop"
)

// Request is a single query line.
type Request struct {
	Type string `json:"type" validate:"required,oneof=Bus Stop"`
	Name string `json:"name" validate:"required"`
}

// ─── Batch ──────────────────────────────────────────────────

// ReadBatch reads a counted block of Stop/Bus definitions from r.
// Unknown commands are skipped.
func ReadBatch(r io.Reader) (*model.Batch, error) {
	return readBatch(newLineScanner(r))
}

func readBatch(sc *lineScanner) (*model.Batch, error) {
	lines, err := sc.counted()
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	batch := &model.Batch{}
	for _, line := range lines {
		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case KindStop:
			s, err := ParseStop(rest)
			if err != nil {
				return nil, err
			}
			batch.Stops = append(batch.Stops, s)
		case KindBus:
			b, err := ParseBus(rest)
			if err != nil {
				return nil, err
			}
			batch.Buses = append(batch.Buses, b)
		}
	}
	return batch, nil
}

// ParseStop parses "<name>: <lat>, <lng>[, <D>m to <stop>]...".
func ParseStop(s string) (model.StopDefinition, error) {
	name, body, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return model.StopDefinition{}, fmt.Errorf("%w: stop %q", ErrMalformedLine, s)
	}

	fields := strings.Split(body, ",")
	if len(fields) < 2 {
		return model.StopDefinition{}, fmt.Errorf("%w: stop %q needs latitude and longitude", ErrMalformedLine, name)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return model.StopDefinition{}, fmt.Errorf("%w: stop %q latitude: %v", ErrMalformedLine, name, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return model.StopDefinition{}, fmt.Errorf("%w: stop %q longitude: %v", ErrMalformedLine, name, err)
	}

	def := model.StopDefinition{
		Name:        name,
		Coordinates: model.Coordinates{Lat: lat, Lng: lng},
	}
	for _, f := range fields[2:] {
		d, err := parseDistance(f)
		if err != nil {
			return model.StopDefinition{}, fmt.Errorf("%w: stop %q: %v", ErrMalformedLine, name, err)
		}
		def.Distances = append(def.Distances, d)
	}
	return def, nil
}

// parseDistance parses "<D>m to <stop>".
func parseDistance(s string) (model.DistanceDefinition, error) {
	meters, to, ok := strings.Cut(strings.TrimSpace(s), "m to ")
	if !ok {
		return model.DistanceDefinition{}, fmt.Errorf("distance %q: want \"<D>m to <stop>\"", s)
	}
	d, err := strconv.Atoi(strings.TrimSpace(meters))
	if err != nil {
		return model.DistanceDefinition{}, fmt.Errorf("distance %q: %v", s, err)
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return model.DistanceDefinition{}, fmt.Errorf("distance %q: missing stop name", s)
	}
	return model.DistanceDefinition{To: to, Meters: d}, nil
}

// ParseBus parses "<number>: s1 > s2 > s1" (circular) or "<number>: s1 - s2"
// (linear). Spaced separators win over bare ones, so "A > Foo-Bar > A" is a
// circular route through "Foo-Bar". A single stop is circular.
func ParseBus(s string) (model.BusDefinition, error) {
	number, body, ok := strings.Cut(s, ":")
	number = strings.TrimSpace(number)
	if !ok || number == "" {
		return model.BusDefinition{}, fmt.Errorf("%w: bus %q", ErrMalformedLine, s)
	}

	circular, sep := routeSeparator(body)

	var stops []string
	for _, part := range strings.Split(body, sep) {
		name := strings.TrimSpace(part)
		if name == "" {
			return model.BusDefinition{}, fmt.Errorf("%w: bus %q has an empty stop name", ErrMalformedLine, number)
		}
		stops = append(stops, name)
	}
	return model.BusDefinition{Number: number, Stops: stops, IsCircular: circular}, nil
}

// routeSeparator picks the stop separator of a route body and whether it
// marks a circular route.
func routeSeparator(body string) (circular bool, sep string) {
	switch {
	case strings.Contains(body, " > "):
		return true, " > "
	case strings.Contains(body, " - "):
		return false, " - "
	case strings.Contains(body, ">"):
		return true, ">"
	case strings.Contains(body, "-"):
		return false, "-"
	default:
		return true, ">"
	}
}

// ─── Requests ───────────────────────────────────────────────

// ReadRequests reads a counted block of "Bus <number>" / "Stop <name>" lines.
func ReadRequests(r io.Reader) ([]Request, error) {
	return readRequests(newLineScanner(r))
}

func readRequests(sc *lineScanner) ([]Request, error) {
	lines, err := sc.counted()
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	reqs := make([]Request, 0, len(lines))
	for _, line := range lines {
		req, err := ParseRequest(line)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// ParseRequest parses one query line.
func ParseRequest(line string) (Request, error) {
	kind, name, ok := strings.Cut(strings.TrimSpace(line), " ")
	name = strings.TrimSpace(name)
	if !ok || name == "" || (kind != KindBus && kind != KindStop) {
		return Request{}, fmt.Errorf("%w: request %q", ErrMalformedLine, line)
	}
	return Request{Type: kind, Name: name}, nil
}

// ReadInput reads a batch block immediately followed by a request block, the
// layout of a single combined input stream.
func ReadInput(r io.Reader) (*model.Batch, []Request, error) {
	sc := newLineScanner(r)
	batch, err := readBatch(sc)
	if err != nil {
		return nil, nil, err
	}
	reqs, err := readRequests(sc)
	if err != nil {
		return nil, nil, err
	}
	return batch, reqs, nil
}

// ─── Scanner ────────────────────────────────────────────────

type lineScanner struct {
	sc *bufio.Scanner
}

func newLineScanner(r io.Reader) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineScanner{sc: sc}
}

// next returns the next non-blank line.
func (l *lineScanner) next() (string, error) {
	for l.sc.Scan() {
		line := strings.TrimSpace(l.sc.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := l.sc.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

// counted reads a count line and then that many lines.
func (l *lineScanner) counted() ([]string, error) {
	head, err := l.next()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(head)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: count %q", ErrMalformedLine, head)
	}
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		line, err := l.next()
		if err != nil {
			return nil, fmt.Errorf("line %d of %d: %w", i+1, n, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}
