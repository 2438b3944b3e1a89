package model

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable hex digest of the batch contents. Two batches
// with the same definitions in the same order share a fingerprint, so it can
// namespace cached query results.
func (b *Batch) Fingerprint() string {
	d := xxhash.New()
	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = d.WriteString(p)
			_, _ = d.Write([]byte{0})
		}
	}

	for _, s := range b.Stops {
		write("S", s.Name,
			strconv.FormatFloat(s.Lat, 'g', -1, 64),
			strconv.FormatFloat(s.Lng, 'g', -1, 64))
		for _, dd := range s.Distances {
			write("D", dd.To, strconv.Itoa(dd.Meters))
		}
	}
	for _, bus := range b.Buses {
		write("B", bus.Number, strconv.FormatBool(bus.IsCircular), strconv.Itoa(len(bus.Stops)))
		write(bus.Stops...)
	}

	return strconv.FormatUint(d.Sum64(), 16)
}
