package exporter

import (
	"context"
	"io"
	"os"

	"github.com/Alberto-Martinelli/webscraping-project/table"
	pretty "github.com/jedib0t/go-pretty/v6/table"
)

// StdoutExporter renders a table for reading in a terminal.
type StdoutExporter struct {
	Exporter
	writer io.Writer
}

func init() {

	ctx := context.Background()
	err := RegisterExporter(ctx, "stdout", NewStdoutExporter)

	if err != nil {
		panic(err)
	}
}

// NewStdoutExporter returns a new `StdoutExporter`. The 'uri' is expected to be "stdout://".
func NewStdoutExporter(ctx context.Context, uri string) (Exporter, error) {

	e := &StdoutExporter{
		writer: os.Stdout,
	}

	return e, nil
}

func (e *StdoutExporter) Export(ctx context.Context, t *table.Table) error {
	Render(e.writer, t)
	return nil
}

func (e *StdoutExporter) Close() error {
	return nil
}

// Render writes 't' to 'wr' as a boxed text table.
func Render(wr io.Writer, t *table.Table) {

	columns := t.Columns()

	pt := pretty.NewWriter()
	pt.SetOutputMirror(wr)

	header := make(pretty.Row, len(columns))

	for i, c := range columns {
		header[i] = c
	}

	pt.AppendHeader(header)

	for idx := 0; idx < t.Len(); idx++ {

		str_row := t.Strings(idx)
		row := make(pretty.Row, len(columns))

		for i, c := range columns {
			row[i] = str_row[c]
		}

		pt.AppendRow(row)
	}

	pt.Render()
}
