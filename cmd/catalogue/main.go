// Command catalogue answers bus and stop queries in the line-oriented text
// format.
//
// With no flags it reads a definition block followed by a request block from
// stdin and writes one answer line per request to stdout:
//
//	catalogue < input.txt
//
// Definitions can instead come from a file, in text or YAML, with requests
// read from -queries (or stdin):
//
//	catalogue -input network.yaml -format yaml -queries requests.txt
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shiva/transit-catalogue/internal/catalogue"
	"github.com/shiva/transit-catalogue/internal/model"
	"github.com/shiva/transit-catalogue/internal/reader"
	"github.com/shiva/transit-catalogue/internal/render"
	"github.com/shiva/transit-catalogue/internal/service"
	"github.com/shiva/transit-catalogue/pkg/geo"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("[catalogue] ")

	var opts options
	flag.StringVar(&opts.input, "input", "", "definition file (default: stdin)")
	flag.StringVar(&opts.format, "format", reader.FormatText, "definition format: text or yaml")
	flag.StringVar(&opts.queries, "queries", "", "request file (default: after the definitions, or stdin)")
	flag.StringVar(&opts.geo, "geo", "cosines", "great-circle formula: cosines or haversine")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	input   string
	format  string
	queries string
	geo     string
}

// run loads the catalogue, answers every request and writes the answers.
func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer) error {
	batch, reqs, err := readInput(opts, stdin)
	if err != nil {
		return err
	}

	var geoDist catalogue.GeoFunc
	switch opts.geo {
	case "cosines", "":
		geoDist = geo.GreatCircleM
	case "haversine":
		geoDist = geo.HaversineM
	default:
		return fmt.Errorf("unknown geo formula %q", opts.geo)
	}

	cat := catalogue.New(geoDist)
	if err := cat.Load(*batch); err != nil {
		return err
	}

	svc := service.NewQueryService(cat, nil, service.CacheVersion(batch, opts.geo))
	return render.Lines(stdout, svc.AnswerText(ctx, reqs))
}

// readInput resolves where definitions and requests come from.
//
// Without -queries and in text format, one stream carries both blocks.
// Otherwise definitions are a whole document and requests are read from
// -queries, or from stdin when definitions came from -input.
func readInput(opts options, stdin io.Reader) (*model.Batch, []reader.Request, error) {
	defs := stdin
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		defs = f
	}

	if opts.queries == "" && opts.format == reader.FormatText {
		batch, reqs, err := reader.ReadInput(defs)
		if err != nil {
			return nil, nil, err
		}
		if err := reader.ValidateBatch(batch); err != nil {
			return nil, nil, err
		}
		return batch, reqs, nil
	}

	batch, err := reader.DecodeBatch(defs, opts.format)
	if err != nil {
		return nil, nil, err
	}

	var reqSrc io.Reader
	switch {
	case opts.queries != "":
		f, err := os.Open(opts.queries)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		reqSrc = f
	case opts.input != "":
		reqSrc = stdin
	default:
		return nil, nil, errors.New("-queries is required when definitions are read from stdin")
	}

	reqs, err := reader.ReadRequests(reqSrc)
	if err != nil {
		return nil, nil, err
	}
	return batch, reqs, nil
}
