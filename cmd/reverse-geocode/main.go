package main

// This assumes a PMTiles spatial database described here:
// https://millsfield.sfomuseum.org/blog/2022/12/19/pmtiles-pip/

/*

./bin/reverse-geocode \
    -workers 5 \
    -emitter-uri csv:///usr/local/data/4sq/hotels.csv \
    -exporter-uri csv:///usr/local/data/4sq/hotels-wof.csv \
    -spatial-database-uri 'pmtiles://?tiles=file:///usr/local/data/pmtiles/&database=whosonfirst-point-in-polygon-z13-20240406&enable-cache=true&pmtiles-cache-size=4096&zoom=13&layer=whosonfirst'

*/

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/Alberto-Martinelli/webscraping-project/emitter"
	"github.com/Alberto-Martinelli/webscraping-project/exporter"
	"github.com/Alberto-Martinelli/webscraping-project/spatial"
	"github.com/Alberto-Martinelli/webscraping-project/table"
)

func main() {

	var spatial_database_uri string

	var emitter_uri string
	var exporter_uri string
	var workers int

	flag.StringVar(&spatial_database_uri, "spatial-database-uri", "", "A registered whosonfirst/go-whosonfirst-spatial/database/SpatialDatabase URI to use for perforning reverse geocoding tasks.")

	flag.StringVar(&emitter_uri, "emitter-uri", "", "A registered emitter.Emitter URI.")
	flag.StringVar(&exporter_uri, "exporter-uri", "csv://", "A registered exporter.Exporter URI. The default writes CSV to STDOUT.")
	flag.IntVar(&workers, "workers", 5, "The maximum number of workers to process reverse geocoding tasks.")

	flag.Parse()

	ctx := context.Background()

	e, err := emitter.NewEmitter(ctx, emitter_uri)

	if err != nil {
		log.Fatal(err)
	}

	defer e.Close()

	records, err := emitter.Collect(ctx, e)

	if err != nil {
		log.Fatalf("Failed to read records, %v", err)
	}

	t, err := table.Assemble(records)

	if err != nil {
		log.Fatalf("Failed to assemble table, %v", err)
	}

	resolver, err := spatial.NewWhosOnFirstResolver(ctx, spatial_database_uri)

	if err != nil {
		log.Fatal(err)
	}

	defer resolver.Close(ctx)

	rsp, err := spatial.Enrich(ctx, t, resolver, workers)

	if err != nil {
		log.Fatalf("Failed to reverse geocode places, %v", err)
	}

	ex, err := exporter.NewExporter(ctx, exporter_uri)

	if err != nil {
		log.Fatalf("Failed to create exporter, %v", err)
	}

	defer ex.Close()

	err = ex.Export(ctx, t)

	if err != nil {
		log.Fatalf("Failed to export table, %v", err)
	}

	slog.Info("Complete", "resolved", rsp.Resolved, "skipped", rsp.Skipped, "failed", rsp.Failed)
}
