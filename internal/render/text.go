// Package render writes query answers in the catalogue's line-oriented text
// format, one answer per line.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shiva/transit-catalogue/internal/model"
)

// BusStats renders a successful bus query:
//
//	Bus 256: 6 stops on route, 5 unique stops, 5950 route length, 1.36124 curvature
func BusStats(s model.RouteStats) string {
	return fmt.Sprintf("Bus %s: %d stops on route, %d unique stops, %d route length, %s curvature",
		s.Bus, s.TotalStops, s.UniqueStops, s.RoadLength, formatCurvature(s.Curvature))
}

// BusNotFound renders a bus query for an unknown bus.
func BusNotFound(number string) string {
	return fmt.Sprintf("Bus %s: not found", number)
}

// Failed renders a query that could not be answered for a reason other than
// an unknown name, such as a missing road distance or a degenerate route.
func Failed(kind, name string, err error) string {
	return fmt.Sprintf("%s %s: error: %v", kind, name, err)
}

// StopBuses renders a successful stop query:
//
//	Stop Biryulyovo Zapadnoye: buses 256 828
//	Stop Prazhskaya: no buses
func StopBuses(info model.StopInfo) string {
	if len(info.Buses) == 0 {
		return fmt.Sprintf("Stop %s: no buses", info.Name)
	}
	return fmt.Sprintf("Stop %s: buses %s", info.Name, strings.Join(info.Buses, " "))
}

// StopNotFound renders a stop query for an unknown stop.
func StopNotFound(name string) string {
	return fmt.Sprintf("Stop %s: not found", name)
}

// Lines writes every line followed by '\n'.
func Lines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// formatCurvature prints six significant digits without trailing zeros.
func formatCurvature(c float64) string {
	return strconv.FormatFloat(c, 'g', 6, 64)
}
