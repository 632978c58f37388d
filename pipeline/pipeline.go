// Package pipeline ties the fetch, normalize, assemble and enrich steps together. Every
// step runs sequentially and the number of API calls made is returned to the caller.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/Alberto-Martinelli/webscraping-project"
	"github.com/Alberto-Martinelli/webscraping-project/client"
	"github.com/Alberto-Martinelli/webscraping-project/enrich"
	"github.com/Alberto-Martinelli/webscraping-project/table"
)

// Failure records a path that could not be fetched or normalized.
type Failure struct {
	Path string
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

type Result struct {
	Table    *table.Table
	Calls    int
	Failures []*Failure
	Rejected []*places.ShapeError
	Enrich   *enrich.Result
}

type RunOptions struct {
	Query places.SearchQuery
	Tips  bool
	// TipsColumn defaults to enrich.TIPS_COLUMN
	TipsColumn string
}

// Collect fetches each of 'paths' in order, normalizes the payloads and assembles the
// records in to a single table.
func Collect(ctx context.Context, cl client.Client, paths ...string) (*Result, error) {

	rsp := &Result{
		Failures: make([]*Failure, 0),
		Rejected: make([]*places.ShapeError, 0),
	}

	records := make([]places.Record, 0)

	for _, path := range paths {

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		rsp.Calls += 1
		body, err := cl.Get(ctx, path)

		if err != nil {
			slog.Error("Failed to fetch", "path", path, "error", err)
			rsp.Failures = append(rsp.Failures, &Failure{Path: path, Err: err})
			continue
		}

		batch, err := places.Normalize(ctx, body)

		if err != nil {
			slog.Error("Failed to normalize", "path", path, "error", err)
			rsp.Failures = append(rsp.Failures, &Failure{Path: path, Err: err})
			continue
		}

		if batch.Empty() {
			slog.Info("No data available", "path", path)
			continue
		}

		for _, shape_err := range batch.Rejected {
			slog.Warn("Skipping item", "path", path, "error", shape_err)
		}

		records = append(records, batch.Records...)
		rsp.Rejected = append(rsp.Rejected, batch.Rejected...)
	}

	t, err := table.Assemble(records)

	if err != nil {
		return nil, fmt.Errorf("Failed to assemble table, %w", err)
	}

	dupes := t.Duplicates()

	if len(dupes) > 0 {
		slog.Warn("Duplicate identifiers", "key", t.Key(), "ids", dupes)
	}

	rsp.Table = t
	return rsp, nil
}

// Run performs a places search and, if requested, enriches every place with its tips.
func Run(ctx context.Context, cl client.Client, opts *RunOptions) (*Result, error) {

	q := url.Values{}

	if opts != nil {
		q = opts.Query.Values()
	}

	rsp, err := Collect(ctx, cl, client.SearchPath(q))

	if err != nil {
		return nil, err
	}

	if opts == nil || !opts.Tips || rsp.Table.Len() == 0 {
		return rsp, nil
	}

	enrich_opts := &enrich.Options{
		Column: opts.TipsColumn,
	}

	enrich_rsp, err := enrich.Tips(ctx, cl, rsp.Table, enrich_opts)

	if err != nil {
		return nil, fmt.Errorf("Failed to enrich table, %w", err)
	}

	rsp.Calls += enrich_rsp.Calls
	rsp.Enrich = enrich_rsp

	return rsp, nil
}
