package main

/*

./bin/tips \
    -id 4b4d5a3ef964a5208ad026e3 \
    -id 49b7ed6df964a52030531fe3 \
    -exporter-uri csv:///usr/local/data/4sq/tips.csv

*/

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/url"

	"github.com/Alberto-Martinelli/webscraping-project/client"
	"github.com/Alberto-Martinelli/webscraping-project/config"
	"github.com/Alberto-Martinelli/webscraping-project/exporter"
	"github.com/Alberto-Martinelli/webscraping-project/pipeline"
	"github.com/sfomuseum/go-flags/multi"
)

func main() {

	var ids multi.MultiString

	var client_uri string
	var exporter_uri string

	flag.Var(&ids, "id", "One or more place IDs to fetch tips for.")
	flag.StringVar(&client_uri, "client-uri", "", "A registered client.Client URI. Defaults to foursquare:// with the value of API_KEY.")
	flag.StringVar(&exporter_uri, "exporter-uri", "csv://", "A registered exporter.Exporter URI. The default writes CSV to STDOUT.")

	flag.Parse()

	ctx := context.Background()

	api_key, err := config.APIKey()

	if err != nil {
		log.Fatal(err)
	}

	if len(ids) == 0 {
		log.Fatal("No place IDs to fetch tips for")
	}

	if client_uri == "" {
		client_uri = fmt.Sprintf("foursquare://?key=%s", url.QueryEscape(api_key))
	}

	cl, err := client.NewClient(ctx, client_uri)

	if err != nil {
		log.Fatalf("Failed to create client, %v", err)
	}

	ex, err := exporter.NewExporter(ctx, exporter_uri)

	if err != nil {
		log.Fatalf("Failed to create exporter, %v", err)
	}

	defer ex.Close()

	paths := make([]string, len(ids))

	for i, id := range ids {
		paths[i] = client.TipsPath(id)
	}

	rsp, err := pipeline.Collect(ctx, cl, paths...)

	if err != nil {
		log.Fatalf("Failed to collect tips, %v", err)
	}

	err = ex.Export(ctx, rsp.Table)

	if err != nil {
		log.Fatalf("Failed to export table, %v", err)
	}

	slog.Info("Complete", "rows", rsp.Table.Len(), "failures", len(rsp.Failures), "api_calls", rsp.Calls)
}
