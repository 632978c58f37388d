package main

/*

./bin/places \
    -near 'New York, NY' \
    -query hotel \
    -limit 10 \
    -tips \
    -exporter-uri csv:///usr/local/data/4sq/hotels.csv

*/

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Alberto-Martinelli/webscraping-project/client"
	"github.com/Alberto-Martinelli/webscraping-project/config"
	"github.com/Alberto-Martinelli/webscraping-project/exporter"
	"github.com/Alberto-Martinelli/webscraping-project/pipeline"
)

func main() {

	var config_path string
	var env_path string

	var client_uri string
	var exporter_uri string
	var cache_uri string
	var cache_ttl int

	var query string
	var near string
	var ll string
	var categories string
	var radius int
	var limit int

	var tips bool
	var tips_column string
	var verbose bool

	flag.StringVar(&config_path, "config", "", "An optional json5 config file. Flags take precedence over its values.")
	flag.StringVar(&env_path, "env", "", "An optional .env file to load API_KEY from. Defaults to ./.env")

	flag.StringVar(&client_uri, "client-uri", "", "A registered client.Client URI. Defaults to foursquare:// with the value of API_KEY.")
	flag.StringVar(&exporter_uri, "exporter-uri", "csv://", "A registered exporter.Exporter URI. The default writes CSV to STDOUT.")
	flag.StringVar(&cache_uri, "cache-uri", "", "An optional redis:// URI used to cache API responses.")
	flag.IntVar(&cache_ttl, "cache-ttl", 3600, "The number of seconds cached API responses are kept for.")

	flag.StringVar(&query, "query", "", "The search query.")
	flag.StringVar(&near, "near", "", "A locality to search near.")
	flag.StringVar(&ll, "ll", "", "A comma-separated latitude,longitude to search around.")
	flag.StringVar(&categories, "categories", "", "A comma-separated list of category IDs.")
	flag.IntVar(&radius, "radius", 0, "The search radius in meters.")
	flag.IntVar(&limit, "limit", 0, "The maximum number of places to return.")

	flag.BoolVar(&tips, "tips", false, "Enrich each place with its joined tips.")
	flag.StringVar(&tips_column, "tips-column", "tips", "The column tips are written to.")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose (debug) logging.")

	flag.Parse()

	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx := context.Background()

	env_paths := make([]string, 0)

	if env_path != "" {
		env_paths = append(env_paths, env_path)
	}

	// Fail fast, before anything else is set up
	api_key, err := config.APIKey(env_paths...)

	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Config{}

	if config_path != "" {

		c, err := config.ReadConfig[config.Config](config_path)

		if err != nil {
			log.Fatalf("Failed to read config %s, %v", config_path, err)
		}

		cfg = c
	}

	flag.Visit(func(fl *flag.Flag) {

		switch fl.Name {
		case "client-uri":
			cfg.ClientURI = client_uri
		case "exporter-uri":
			cfg.ExporterURI = exporter_uri
		case "cache-uri":
			cfg.CacheURI = cache_uri
		case "tips":
			cfg.Tips = tips
		case "query":
			cfg.Search.Query = query
		case "near":
			cfg.Search.Near = near
		case "ll":
			cfg.Search.LatLon = ll
		case "categories":
			cfg.Search.Categories = categories
		case "radius":
			cfg.Search.Radius = radius
		case "limit":
			cfg.Search.Limit = limit
		}
	})

	if cfg.ExporterURI == "" {
		cfg.ExporterURI = exporter_uri
	}

	if cfg.ClientURI == "" {
		cfg.ClientURI = fmt.Sprintf("foursquare://?key=%s", url.QueryEscape(api_key))
	}

	cl, err := client.NewClient(ctx, cfg.ClientURI)

	if err != nil {
		log.Fatalf("Failed to create client, %v", err)
	}

	if cfg.CacheURI != "" {

		cache_cl, err := client.NewCachingClientFromURI(ctx, cl, cfg.CacheURI, time.Duration(cache_ttl)*time.Second)

		if err != nil {
			log.Fatalf("Failed to create caching client, %v", err)
		}

		defer cache_cl.Close()
		cl = cache_cl
	}

	opts := &pipeline.RunOptions{
		Query:      cfg.Search,
		Tips:       cfg.Tips,
		TipsColumn: tips_column,
	}

	rsp, err := pipeline.Run(ctx, cl, opts)

	if err != nil {
		log.Fatalf("Failed to run pipeline, %v", err)
	}

	if len(rsp.Failures) > 0 {

		errs := make([]error, len(rsp.Failures))

		for i, f := range rsp.Failures {
			errs[i] = f
		}

		slog.Error("Search failed", "error", errors.Join(errs...))
		os.Exit(1)
	}

	// Only replace a previous export once there is something to write
	ex, err := exporter.NewExporter(ctx, cfg.ExporterURI)

	if err != nil {
		log.Fatalf("Failed to create exporter, %v", err)
	}

	defer ex.Close()

	err = ex.Export(ctx, rsp.Table)

	if err != nil {
		log.Fatalf("Failed to export table, %v", err)
	}

	args := []any{
		"rows", rsp.Table.Len(),
		"columns", strings.Join(rsp.Table.Columns(), ","),
		"rejected", len(rsp.Rejected),
		"api_calls", rsp.Calls,
	}

	if rsp.Enrich != nil {
		args = append(args, "enriched", rsp.Enrich.Enriched, "enrich_failures", len(rsp.Enrich.Failures))
	}

	slog.Info("Complete", args...)
}
