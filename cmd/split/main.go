package main

/*

./bin/split \
    -emitter-uri csv:///usr/local/data/4sq/hotels.csv \
    -column country \
    -prefix /usr/local/data/4sq/hotels

*/

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/Alberto-Martinelli/webscraping-project/emitter"
	"github.com/Alberto-Martinelli/webscraping-project/exporter"
	"github.com/Alberto-Martinelli/webscraping-project/table"
)

func main() {

	var emitter_uri string
	var column string
	var fallback string
	var prefix string

	flag.StringVar(&emitter_uri, "emitter-uri", "", "A registered emitter.Emitter URI.")
	flag.StringVar(&column, "column", "country", "The column whose values rows are split on.")
	flag.StringVar(&fallback, "fallback", "XY", "The value used for rows where 'column' is empty.")
	flag.StringVar(&prefix, "prefix", "places", "The path prefix for each output file. Files are written to {PREFIX}-{VALUE}.csv")

	flag.Parse()

	ctx := context.Background()

	e, err := emitter.NewEmitter(ctx, emitter_uri)

	if err != nil {
		log.Fatalf("Failed to create emitter, %v", err)
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

	if !t.HasColumn(column) {
		log.Fatalf("Table does not have a '%s' column", column)
	}

	for value, part := range t.Partition(column, fallback) {

		path := fmt.Sprintf("%s-%s.csv", prefix, value)

		abs_path, err := filepath.Abs(path)

		if err != nil {
			log.Fatalf("Failed to derive absolute path for %s, %v", path, err)
		}

		u := url.URL{
			Scheme: "csv",
			Path:   filepath.ToSlash(abs_path),
		}

		ex, err := exporter.NewExporter(ctx, u.String())

		if err != nil {
			log.Fatalf("Failed to create exporter for %s, %v", path, err)
		}

		err = ex.Export(ctx, part)
		ex.Close()

		if err != nil {
			log.Fatalf("Failed to export %s, %v", path, err)
		}

		slog.Info("Write", column, value, "path", path, "rows", part.Len())
	}
}
