package exporter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Alberto-Martinelli/webscraping-project/table"
	"github.com/xuri/excelize/v2"
)

const XLSX_SHEET string = "Sheet1"

type XLSXExporter struct {
	Exporter
	path  string
	sheet string
}

func init() {

	ctx := context.Background()
	err := RegisterExporter(ctx, "xlsx", NewXLSXExporter)

	if err != nil {
		panic(err)
	}
}

// NewXLSXExporter returns a new `XLSXExporter` configured by 'uri' which is expected to take
// the form of:
//
//	xlsx:///path/to/file.xlsx?sheet={NAME}
func NewXLSXExporter(ctx context.Context, uri string) (Exporter, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	path := derivePath(u)

	if path == "" {
		return nil, fmt.Errorf("Missing path")
	}

	sheet := XLSX_SHEET

	q := u.Query()

	if q.Has("sheet") {
		sheet = q.Get("sheet")
	}

	e := &XLSXExporter{
		path:  path,
		sheet: sheet,
	}

	return e, nil
}

// Export writes a header row followed by every table row, in table column order.
func (e *XLSXExporter) Export(ctx context.Context, t *table.Table) error {

	f := excelize.NewFile()
	defer f.Close()

	if e.sheet != XLSX_SHEET {

		err := f.SetSheetName(XLSX_SHEET, e.sheet)

		if err != nil {
			return err
		}
	}

	columns := t.Columns()

	header := make([]interface{}, len(columns))

	for i, c := range columns {
		header[i] = c
	}

	err := e.setRow(f, 1, header)

	if err != nil {
		return err
	}

	for idx := 0; idx < t.Len(); idx++ {

		if ctx.Err() != nil {
			return ctx.Err()
		}

		row := t.Row(idx)
		values := make([]interface{}, len(columns))

		for i, c := range columns {

			switch v := row[c].(type) {
			case float64:
				values[i] = v
			default:
				values[i] = table.Format(v)
			}
		}

		err := e.setRow(f, idx+2, values)

		if err != nil {
			return err
		}
	}

	return f.SaveAs(e.path)
}

func (e *XLSXExporter) setRow(f *excelize.File, row_num int, values []interface{}) error {

	cell, err := excelize.CoordinatesToCellName(1, row_num)

	if err != nil {
		return err
	}

	return f.SetSheetRow(e.sheet, cell, &values)
}

func (e *XLSXExporter) Close() error {
	return nil
}
