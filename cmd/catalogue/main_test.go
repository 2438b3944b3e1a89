package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleInput = `13
Stop Tolstopaltsevo: 55.611087, 37.20829, 3900m to Marushkino
Stop Marushkino: 55.595884, 37.209755, 9900m to Rasskazovka, 100m to Marushkino
Bus 256: Biryulyovo Zapadnoye > Biryusinka > Universam > Biryulyovo Tovarnaya > Biryulyovo Passazhirskaya > Biryulyovo Zapadnoye
Bus 750: Tolstopaltsevo - Marushkino - Marushkino - Rasskazovka
Stop Rasskazovka: 55.632761, 37.333324, 9500m to Marushkino
Stop Biryulyovo Zapadnoye: 55.574371, 37.6517, 7500m to Rossoshanskaya ulitsa, 1800m to Biryusinka, 2400m to Universam
Stop Biryusinka: 55.581065, 37.64839, 750m to Universam
Stop Universam: 55.587655, 37.645687, 5600m to Rossoshanskaya ulitsa, 900m to Biryulyovo Tovarnaya
Stop Biryulyovo Tovarnaya: 55.592028, 37.653656, 1300m to Biryulyovo Passazhirskaya
Stop Biryulyovo Passazhirskaya: 55.580999, 37.659164, 1200m to Biryulyovo Zapadnoye
Bus 828: Biryulyovo Zapadnoye > Universam > Rossoshanskaya ulitsa > Biryulyovo Zapadnoye
Stop Rossoshanskaya ulitsa: 55.595579, 37.605757
Stop Prazhskaya: 55.611678, 37.603831
6
Bus 256
Bus 750
Bus 751
Stop Samara
Stop Prazhskaya
Stop Biryulyovo Zapadnoye
`

const sampleOutput = `Bus 256: 6 stops on route, 5 unique stops, 5950 route length, 1.36124 curvature
Bus 750: 7 stops on route, 3 unique stops, 27400 route length, 1.30853 curvature
Bus 751: not found
Stop Samara: not found
Stop Prazhskaya: no buses
Stop Biryulyovo Zapadnoye: buses 256 828
`

func TestRun_Stdin(t *testing.T) {
	var out bytes.Buffer
	opts := options{format: "text", geo: "cosines"}
	if err := run(context.Background(), opts, strings.NewReader(sampleInput), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != sampleOutput {
		t.Errorf("output mismatch\n got:\n%s\nwant:\n%s", out.String(), sampleOutput)
	}
}

func TestRun_YAMLWithQueryFile(t *testing.T) {
	dir := t.TempDir()
	defs := filepath.Join(dir, "network.yaml")
	queries := filepath.Join(dir, "requests.txt")

	writeFile(t, defs, `stops:
  - {name: A, latitude: 55.60, longitude: 37.20, road_distances: [{to: B, meters: 1500}]}
  - {name: B, latitude: 55.61, longitude: 37.20}
buses:
  - {number: "12", stops: [A, B]}
`)
	writeFile(t, queries, "3\nBus 12\nStop B\nStop C\n")

	var out bytes.Buffer
	opts := options{input: defs, format: "yaml", queries: queries, geo: "haversine"}
	if err := run(context.Background(), opts, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "Bus 12: 3 stops on route, 2 unique stops, 3000 route length, ") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "Stop B: buses 12" || lines[2] != "Stop C: not found" {
		t.Errorf("lines = %q", lines)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		opts  options
		stdin string
	}{
		{"yaml on stdin without queries", options{format: "yaml"}, "stops: []\n"},
		{"unknown geo formula", options{format: "text", geo: "flat"}, sampleInput},
		{"missing input file", options{input: "/nonexistent/batch.txt", format: "text"}, ""},
		{"duplicate stop", options{format: "text"}, "2\nStop A: 1, 1\nStop A: 2, 2\n0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(context.Background(), tt.opts, strings.NewReader(tt.stdin), &out); err == nil {
				t.Errorf("run succeeded, want error (output %q)", out.String())
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
