package exporter

import (
	"context"
	"encoding/csv"
	"io"
	"net/url"
	"os"
	"slices"

	"github.com/Alberto-Martinelli/webscraping-project/table"
	"github.com/sfomuseum/go-csvdict/v2"
)

// CSVExporter writes a table as CSV. The output file is not created until the first
// call to Export.
type CSVExporter struct {
	Exporter
	path   string
	writer io.Writer
	closer io.Closer
}

func init() {

	ctx := context.Background()
	err := RegisterExporter(ctx, "csv", NewCSVExporter)

	if err != nil {
		panic(err)
	}
}

// NewCSVExporter returns a new `CSVExporter` configured by 'uri' which is expected to take
// the form of:
//
//	csv:///path/to/file.csv
//	csv://relative/path/to/file.csv
//
// If the path is empty rows are written to STDOUT.
func NewCSVExporter(ctx context.Context, uri string) (Exporter, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	e := &CSVExporter{
		path: derivePath(u),
	}

	if e.path == "" {
		e.writer = os.Stdout
	}

	return e, nil
}

func (e *CSVExporter) Export(ctx context.Context, t *table.Table) error {

	if e.writer == nil {

		fh, err := os.Create(e.path)

		if err != nil {
			return err
		}

		e.writer = fh
		e.closer = fh
	}

	return WriteCSV(ctx, e.writer, t)
}

func (e *CSVExporter) Close() error {

	if e.closer == nil {
		return nil
	}

	return e.closer.Close()
}

// WriteCSV writes 't' to 'wr' as a header row followed by one line per table row. There
// is no index column. A table with columns but no rows is written as a header row only;
// nothing is written for a table without columns.
func WriteCSV(ctx context.Context, wr io.Writer, t *table.Table) error {

	if t.Len() == 0 {
		return writeCSVHeader(wr, t)
	}

	csv_wr, err := csvdict.NewWriter(wr)

	if err != nil {
		return err
	}

	for idx := 0; idx < t.Len(); idx++ {

		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := csv_wr.WriteRow(t.Strings(idx))

		if err != nil {
			return err
		}
	}

	csv_wr.Flush()
	return nil
}

// csvdict derives its header from the first row written, so a header for a table
// without rows is written directly. Columns are sorted to match csvdict's ordering.
func writeCSVHeader(wr io.Writer, t *table.Table) error {

	columns := t.Columns()

	if len(columns) == 0 {
		return nil
	}

	slices.Sort(columns)

	csv_wr := csv.NewWriter(wr)

	err := csv_wr.Write(columns)

	if err != nil {
		return err
	}

	csv_wr.Flush()
	return csv_wr.Error()
}
