package main

/*

./bin/emit \
    -emitter-uri 'csv:///usr/local/data/4sq/hotels.csv.bz2?compression=bzip2' \
    -emitter-uri json:///usr/local/data/4sq/search.json

*/

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/Alberto-Martinelli/webscraping-project/emitter"
	"github.com/sfomuseum/go-flags/multi"
)

func main() {

	var emitter_uris multi.MultiString

	flag.Var(&emitter_uris, "emitter-uri", "One or more registered emitter.Emitter URIs.")

	flag.Parse()

	slog.SetLogLoggerLevel(slog.LevelDebug)

	ctx := context.Background()

	for _, uri := range emitter_uris {

		e, err := emitter.NewEmitter(ctx, uri)

		if err != nil {
			log.Fatalf("Failed to create emitter for %s, %v", uri, err)
		}

		count := 0

		for r, err := range e.Emit(ctx) {

			if err != nil {
				slog.Error("Failed to yield record", "uri", uri, "error", err)
				continue
			}

			slog.Debug("Record", "kind", r.Kind(), "id", r.ID())
			count += 1
		}

		e.Close()

		slog.Info("Complete", "uri", uri, "count", count)
	}
}
