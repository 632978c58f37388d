package emitter

import (
	"compress/bzip2"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/url"
	"os"
	"slices"
	"strconv"

	"github.com/Alberto-Martinelli/webscraping-project"
	"github.com/sfomuseum/go-csvdict/v2"
)

// CSVEmitter re-reads a table written by the CSV exporter. Rows with a "fsq_id" column are
// emitted as places, rows with an "id" column as texts. Any other column, such as one
// added by enrichment, is carried along with the record.
type CSVEmitter struct {
	Emitter
	reader io.ReadCloser
	source io.Reader
}

func init() {

	ctx := context.Background()
	err := RegisterEmitter(ctx, "csv", NewCSVEmitter)

	if err != nil {
		panic(err)
	}
}

// NewCSVEmitter returns a new `CSVEmitter` configured by 'uri' which is expected to take
// the form of:
//
//	csv:///path/to/file.csv?compression={COMPRESSION}
//
// Where 'compression' is optional and may be "bzip2".
func NewCSVEmitter(ctx context.Context, uri string) (Emitter, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	r, err := os.Open(derivePath(u))

	if err != nil {
		return nil, err
	}

	e := &CSVEmitter{
		reader: r,
		source: r,
	}

	q := u.Query()

	switch q.Get("compression") {
	case "":
		// pass
	case "bzip2":
		e.source = bzip2.NewReader(r)
	default:
		r.Close()
		return nil, fmt.Errorf("Unsupported compression '%s'", q.Get("compression"))
	}

	return e, nil
}

func (e *CSVEmitter) Emit(ctx context.Context) iter.Seq2[places.Record, error] {

	return func(yield func(places.Record, error) bool) {

		csv_r, err := csvdict.NewReader(e.source)

		if err != nil {
			yield(nil, err)
			return
		}

		idx := 0

		for row, err := range csv_r.Iterate() {

			if err != nil {

				if !yield(nil, err) {
					return
				}

				continue
			}

			r, err := recordFromRow(idx, row)
			idx += 1

			if !yield(r, err) {
				return
			}
		}
	}
}

func (e *CSVEmitter) Close() error {
	return e.reader.Close()
}

func recordFromRow(idx int, row map[string]string) (places.Record, error) {

	r, err := baseRecordFromRow(idx, row)

	if err != nil {
		return nil, err
	}

	return withExtraColumns(r, row), nil
}

// withExtraColumns keeps the columns of 'row' that are not part of the record shape,
// for example "tips" or "wof:parent_id". They are appended in sorted order since the
// CSV header order is not available. Empty cells are read back as null.
func withExtraColumns(r places.Record, row map[string]string) places.Record {

	columns := make([]string, 0)
	values := make(map[string]any)

	for k, v := range row {

		if slices.Contains(r.Columns(), k) {
			continue
		}

		columns = append(columns, k)

		if v == "" {
			values[k] = nil
		} else {
			values[k] = v
		}
	}

	slices.Sort(columns)

	return places.WithColumns(r, columns, values)
}

func baseRecordFromRow(idx int, row map[string]string) (places.Record, error) {

	_, is_place := row[places.PLACE_ID]
	_, is_text := row[places.TEXT_ID]

	switch {
	case is_place:

		categories := make([]string, 0)
		str_categories := row["categories"]

		if str_categories != "" {

			err := json.Unmarshal([]byte(str_categories), &categories)

			if err != nil {
				return nil, &places.ShapeError{Index: idx, Field: "categories", Err: err}
			}
		}

		pl := &places.PlaceRecord{
			Id:               row[places.PLACE_ID],
			Name:             row["name"],
			Address:          optionalString(row, "address"),
			Locality:         optionalString(row, "locality"),
			Country:          optionalString(row, "country"),
			FormattedAddress: optionalString(row, "formatted_address"),
			Latitude:         optionalFloat(row, "latitude"),
			Longitude:        optionalFloat(row, "longitude"),
			Distance:         optionalFloat(row, "distance"),
			Link:             row["link"],
			Categories:       categories,
		}

		return pl, nil

	case is_text:

		t := &places.TextRecord{
			Id:        row[places.TEXT_ID],
			CreatedAt: row["created_at"],
			Text:      row["text"],
		}

		return t, nil

	default:
		return nil, &places.ShapeError{Index: idx, Err: places.ErrUnknownShape}
	}
}

// Empty cells are read back as null.
func optionalString(row map[string]string, k string) *string {

	v, exists := row[k]

	if !exists || v == "" {
		return nil
	}

	return &v
}

func optionalFloat(row map[string]string, k string) *float64 {

	v, exists := row[k]

	if !exists || v == "" {
		return nil
	}

	f, err := strconv.ParseFloat(v, 64)

	if err != nil {
		return nil
	}

	return &f
}
