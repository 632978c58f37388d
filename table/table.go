// Package table provides an ordered, column-oriented container for normalized records.
package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/Alberto-Martinelli/webscraping-project"
)

var ErrMixedRecords = errors.New("records are not all of the same kind")

// Row maps column names to values. Values are nil, string, float64 or []string.
type Row map[string]any

// Table is an ordered list of rows sharing a single column set. Every row carries
// every column; a column a row never set holds nil.
type Table struct {
	key     string
	columns []string
	rows    []Row
}

// New returns an empty table whose identifier column is 'key' ("" for none).
func New(key string, columns ...string) *Table {

	t := &Table{
		key:     key,
		columns: make([]string, 0),
		rows:    make([]Row, 0),
	}

	if key != "" {
		t.AddColumn(key)
	}

	for _, c := range columns {
		t.AddColumn(c)
	}

	return t
}

// Assemble builds a table from 'records' preserving their order. Identifiers are not
// de-duplicated.
func Assemble(records []places.Record) (*Table, error) {

	if len(records) == 0 {
		return New(""), nil
	}

	kind := records[0].Kind()
	t := New(kind.Key(), records[0].Columns()...)

	for idx, r := range records {

		if r.Kind() != kind {
			return nil, fmt.Errorf("%w: record %d is %s, expected %s", ErrMixedRecords, idx, r.Kind(), kind)
		}

		row := make(Row)

		for _, col := range r.Columns() {
			row[col] = r.Value(col)
		}

		t.Append(row)
	}

	return t, nil
}

func (t *Table) Key() string {
	return t.key
}

func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Row(idx int) Row {
	return t.rows[idx]
}

func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.columns, name)
}

// Append adds 'row' to the table. Columns the table has not seen yet are appended in the
// order they are listed by the row's sorted keys.
func (t *Table) Append(row Row) {

	keys := make([]string, 0, len(row))

	for k := range row {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		t.AddColumn(k)
	}

	for _, c := range t.columns {

		_, exists := row[c]

		if !exists {
			row[c] = nil
		}
	}

	t.rows = append(t.rows, row)
}

// AddColumn adds 'name' to the table, setting it to nil on every existing row. Adding a
// column that already exists is a no-op.
func (t *Table) AddColumn(name string) {

	if t.HasColumn(name) {
		return
	}

	t.columns = append(t.columns, name)

	for _, row := range t.rows {
		row[name] = nil
	}
}

// Set assigns 'value' to 'column' on every row whose identifier equals 'id' and returns
// the number of rows updated.
func (t *Table) Set(column string, id string, value any) int {

	t.AddColumn(column)

	count := 0

	for _, row := range t.rows {

		if t.rowID(row) != id {
			continue
		}

		row[column] = value
		count += 1
	}

	return count
}

// IDs returns the distinct identifiers in the table, in order of first appearance.
func (t *Table) IDs() []string {

	seen := make(map[string]bool)
	ids := make([]string, 0)

	for _, row := range t.rows {

		id := t.rowID(row)

		if seen[id] {
			continue
		}

		seen[id] = true
		ids = append(ids, id)
	}

	return ids
}

// Duplicates returns the identifiers that appear on more than one row.
func (t *Table) Duplicates() []string {

	counts := make(map[string]int)
	dupes := make([]string, 0)

	for _, row := range t.rows {

		id := t.rowID(row)
		counts[id] += 1

		if counts[id] == 2 {
			dupes = append(dupes, id)
		}
	}

	return dupes
}

// Strings returns the row at 'idx' with every value rendered by Format.
func (t *Table) Strings(idx int) map[string]string {

	row := t.rows[idx]
	out := make(map[string]string, len(t.columns))

	for _, c := range t.columns {
		out[c] = Format(row[c])
	}

	return out
}

func (t *Table) rowID(row Row) string {

	if t.key == "" {
		return ""
	}

	id, _ := row[t.key].(string)
	return id
}

// Format renders a table value as text. nil is the empty string and lists are encoded
// as a JSON array.
func Format(v any) string {

	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case []string:

		enc, err := json.Marshal(v)

		if err != nil {
			return ""
		}

		return string(enc)

	default:
		return fmt.Sprintf("%v", v)
	}
}
