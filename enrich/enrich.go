// Package enrich merges per-identifier API sub-resources back in to an assembled table.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Alberto-Martinelli/webscraping-project"
	"github.com/Alberto-Martinelli/webscraping-project/client"
	"github.com/Alberto-Martinelli/webscraping-project/table"
)

const TIPS_COLUMN string = "tips"

var ErrMissingKey = errors.New("table has no identifier column")

type Options struct {
	// Column is the name of the column the joined tips are written to.
	Column string
	// Path returns the sub-resource path for an identifier.
	Path func(string) string
}

// Failure records an identifier whose enrichment could not be completed. The matching
// rows hold nil in the enrichment column.
type Failure struct {
	ID  string
	Err error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.ID, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

type Result struct {
	// Calls is the number of fetches issued, successful or not.
	Calls    int
	Enriched int
	Failures []*Failure
}

// Tips fetches the tips for every distinct identifier in 't', one request per identifier,
// and writes the joined tip texts to every row sharing that identifier. Rows whose fetch
// fails are explicitly set to nil; running Tips again overwrites previous values.
//
// Since duplicate rows share a single request, Result.Calls is the number of distinct
// identifiers in 't', which is less than Len() when identifiers repeat.
func Tips(ctx context.Context, cl client.Client, t *table.Table, opts *Options) (*Result, error) {

	if t.Key() == "" {
		return nil, ErrMissingKey
	}

	column := TIPS_COLUMN
	path_func := client.TipsPath

	if opts != nil {

		if opts.Column != "" {
			column = opts.Column
		}

		if opts.Path != nil {
			path_func = opts.Path
		}
	}

	t.AddColumn(column)

	rsp := &Result{
		Failures: make([]*Failure, 0),
	}

	for _, id := range t.IDs() {

		if ctx.Err() != nil {
			return rsp, ctx.Err()
		}

		path := path_func(id)

		rsp.Calls += 1
		body, err := cl.Get(ctx, path)

		if err == nil {

			var texts []string
			texts, err = places.Tips(body)

			if err == nil {
				t.Set(column, id, places.JoinTips(texts))
				rsp.Enriched += 1
				continue
			}
		}

		slog.Warn("Failed to enrich row", "id", id, "path", path, "error", err)

		t.Set(column, id, nil)
		rsp.Failures = append(rsp.Failures, &Failure{ID: id, Err: err})
	}

	return rsp, nil
}
