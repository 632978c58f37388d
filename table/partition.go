package table

// Partition splits the table in to one table per distinct value of 'column', rendered with
// Format. Rows keep their relative order. Rows with an empty value are grouped under
// 'fallback'.
func (t *Table) Partition(column string, fallback string) map[string]*Table {

	parts := make(map[string]*Table)

	for _, row := range t.rows {

		v := Format(row[column])

		if v == "" {
			v = fallback
		}

		p, exists := parts[v]

		if !exists {
			p = New(t.key, t.columns...)
			parts[v] = p
		}

		row_copy := make(Row, len(row))

		for k, rv := range row {
			row_copy[k] = rv
		}

		p.Append(row_copy)
	}

	return parts
}
