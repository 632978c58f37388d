// Package reviews scrapes hotel review listings from travel site pages.
package reviews

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Alberto-Martinelli/webscraping-project/table"
	"github.com/PuerkitoBio/goquery"
)

// Review is a single review row. Fields missing from the page are nil.
type Review struct {
	URL              string
	Rating           *string
	ScoreDescription *string
	User             *string
	Pros             *string
}

// Selectors are the CSS selectors used to locate reviews and their fields. Field
// selectors are relative to a review row.
type Selectors struct {
	Row              string
	Rating           string
	ScoreDescription string
	User             string
	Pros             string
}

func DefaultSelectors() *Selectors {

	s := &Selectors{
		Row:              ".acD_-reviews-row-header",
		Rating:           ".wdjx-positive",
		ScoreDescription: ".acD_-score-description",
		User:             ".acD_-userName",
		Pros:             ".acD_-pros [id^='showMoreText']",
	}

	return s
}

// PageFetcher returns the rendered HTML of a page once its review rows are present.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string, wait_for string) (string, error)
}

// ReadTargets returns the URLs listed in 'path', one per line. Blank lines and lines
// starting with '#' are ignored.
func ReadTargets(path string) ([]string, error) {

	r, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer r.Close()

	urls := make([]string, 0)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {

		ln := strings.TrimSpace(scanner.Text())

		if ln == "" || strings.HasPrefix(ln, "#") {
			continue
		}

		urls = append(urls, ln)
	}

	err = scanner.Err()

	if err != nil {
		return nil, err
	}

	return urls, nil
}

// Extract parses 'html' and returns one Review per review row.
func Extract(url string, html string, sel *Selectors) ([]*Review, error) {

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))

	if err != nil {
		return nil, fmt.Errorf("Failed to parse HTML, %w", err)
	}

	results := make([]*Review, 0)

	doc.Find(sel.Row).Each(func(i int, row *goquery.Selection) {

		r := &Review{
			URL:              url,
			Rating:           text(row, sel.Rating),
			ScoreDescription: text(row, sel.ScoreDescription),
			User:             text(row, sel.User),
			Pros:             text(row, sel.Pros),
		}

		results = append(results, r)
	})

	return results, nil
}

// Scrape fetches each of 'urls' in order and extracts its reviews. A URL that fails is
// logged, its error collected, and scraping continues with the next one.
func Scrape(ctx context.Context, f PageFetcher, urls []string, sel *Selectors) ([]*Review, []error) {

	results := make([]*Review, 0)
	errs := make([]error, 0)

	for _, u := range urls {

		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		slog.Info("Scraping reviews", "url", u)

		html, err := f.FetchHTML(ctx, u, sel.Row)

		if err != nil {
			slog.Error("Failed to load reviews", "url", u, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", u, err))
			continue
		}

		page_reviews, err := Extract(u, html, sel)

		if err != nil {
			slog.Error("Failed to process reviews", "url", u, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", u, err))
			continue
		}

		slog.Info("Found reviews", "url", u, "count", len(page_reviews))
		results = append(results, page_reviews...)
	}

	return results, errs
}

// Table returns 'results' as a table with the columns "url", "Rating", "Score Description",
// "User" and "Pros".
func Table(results []*Review) *table.Table {

	t := table.New("", "url", "Rating", "Score Description", "User", "Pros")

	for _, r := range results {

		row := table.Row{
			"url":               r.URL,
			"Rating":            deref(r.Rating),
			"Score Description": deref(r.ScoreDescription),
			"User":              deref(r.User),
			"Pros":              deref(r.Pros),
		}

		t.Append(row)
	}

	return t
}

func text(row *goquery.Selection, selector string) *string {

	if selector == "" {
		return nil
	}

	s := row.Find(selector).First()

	if s.Length() == 0 {
		return nil
	}

	v := strings.TrimSpace(s.Text())
	return &v
}

func deref(s *string) any {

	if s == nil {
		return nil
	}

	return *s
}
