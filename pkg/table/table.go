// Package table accumulates query result rows into an ordered tabular form.
//
// Rows arrive as loosely-typed maps decoded from JSON. The table tracks the
// union of all columns seen, ordered by first appearance, so pages with
// heterogeneous rows still serialize into a single consistent CSV. Cells
// absent from a row render as empty strings.
package table

// Row is a single result record keyed by column identifier.
type Row map[string]any

// Table is an ordered collection of rows with a tracked column union.
type Table struct {
	cols    []string
	colSeen map[string]struct{}
	rows    []Row
}

// New creates a table, optionally seeded with an initial column order.
func New(cols ...string) *Table {
	t := &Table{colSeen: make(map[string]struct{})}
	t.AddColumns(cols...)
	return t
}

// AddColumns registers columns in the given order. Known columns are ignored,
// so the first registration of a column fixes its position.
func (t *Table) AddColumns(cols ...string) {
	for _, col := range cols {
		if _, ok := t.colSeen[col]; ok {
			continue
		}
		t.colSeen[col] = struct{}{}
		t.cols = append(t.cols, col)
	}
}

// Append adds one row. cols carries the row's own key order (as decoded from
// the source document) and extends the column union before the row lands.
func (t *Table) Append(cols []string, row Row) {
	t.AddColumns(cols...)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns a copy of the column identifiers in table order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// Rows returns the underlying rows. The slice is shared; callers must not
// mutate it while serializing.
func (t *Table) Rows() []Row {
	return t.rows
}

// HasColumn reports whether the table has seen the given column.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.colSeen[col]
	return ok
}
