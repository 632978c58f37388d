package main

/*

./bin/reviews \
    -targets hotels.txt \
    -exporter-uri xlsx:///usr/local/data/hotel_reviews.xlsx

*/

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/Alberto-Martinelli/webscraping-project/exporter"
	"github.com/Alberto-Martinelli/webscraping-project/reviews"
)

func main() {

	var targets string
	var exporter_uri string
	var control_url string
	var headless bool
	var timeout int

	sel := reviews.DefaultSelectors()

	flag.StringVar(&targets, "targets", "", "A plain text file containing one hotel URL per line.")
	flag.StringVar(&exporter_uri, "exporter-uri", "xlsx://hotel_reviews.xlsx", "A registered exporter.Exporter URI.")
	flag.StringVar(&control_url, "control-url", "", "The DevTools URL of a running browser. If empty a new browser is launched.")
	flag.BoolVar(&headless, "headless", true, "Run the browser without a window.")
	flag.IntVar(&timeout, "timeout", 30, "The number of seconds to wait for a page's reviews to load.")

	flag.StringVar(&sel.Row, "row-selector", sel.Row, "The CSS selector for a review row.")
	flag.StringVar(&sel.Rating, "rating-selector", sel.Rating, "The CSS selector for a review's rating.")
	flag.StringVar(&sel.ScoreDescription, "score-selector", sel.ScoreDescription, "The CSS selector for a review's score description.")
	flag.StringVar(&sel.User, "user-selector", sel.User, "The CSS selector for a review's user name and date.")
	flag.StringVar(&sel.Pros, "pros-selector", sel.Pros, "The CSS selector for a review's pros.")

	flag.Parse()

	ctx := context.Background()

	urls, err := reviews.ReadTargets(targets)

	if err != nil {
		log.Fatalf("Failed to read targets, %v", err)
	}

	fetcher_opts := &reviews.RodFetcherOptions{
		Headless:   headless,
		Timeout:    time.Duration(timeout) * time.Second,
		ControlURL: control_url,
	}

	f, err := reviews.NewRodFetcher(ctx, fetcher_opts)

	if err != nil {
		log.Fatalf("Failed to create page fetcher, %v", err)
	}

	defer f.Close()

	results, errs := reviews.Scrape(ctx, f, urls, sel)

	if len(results) == 0 {
		slog.Info("No reviews found", "targets", len(urls), "errors", len(errs))
		return
	}

	ex, err := exporter.NewExporter(ctx, exporter_uri)

	if err != nil {
		log.Fatalf("Failed to create exporter, %v", err)
	}

	defer ex.Close()

	err = ex.Export(ctx, reviews.Table(results))

	if err != nil {
		log.Fatalf("Failed to export reviews, %v", err)
	}

	slog.Info("Reviews saved", "uri", exporter_uri, "count", len(results), "errors", len(errs))
}
