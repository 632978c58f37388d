package places

import (
	"slices"
)

// extendedRecord is a Record carrying columns that were added to its table after
// assembly, such as the enrichment column.
type extendedRecord struct {
	Record
	columns []string
	values  map[string]any
}

// WithColumns returns 'r' with 'columns' appended after its own. The value of an added
// column is read from 'values'; a missing entry is nil. Columns 'r' already has are
// ignored. If nothing is added 'r' is returned as is.
func WithColumns(r Record, columns []string, values map[string]any) Record {

	own := r.Columns()
	extra := make([]string, 0)

	for _, c := range columns {

		if slices.Contains(own, c) || slices.Contains(extra, c) {
			continue
		}

		extra = append(extra, c)
	}

	if len(extra) == 0 {
		return r
	}

	e := &extendedRecord{
		Record:  r,
		columns: slices.Concat(own, extra),
		values:  values,
	}

	return e
}

func (e *extendedRecord) Columns() []string {
	return e.columns
}

func (e *extendedRecord) Value(col string) any {

	v, exists := e.values[col]

	if exists {
		return v
	}

	return e.Record.Value(col)
}
