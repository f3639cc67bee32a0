package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteCSV serializes the table to w: one header record with the column
// union, then one record per row in append order.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(t.cols))
	for _, row := range t.rows {
		for i, col := range t.cols {
			record[i] = formatCell(row[col])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes a table to a CSV file at path, creating parent
// directories as needed. This is a convenience wrapper around [Table.WriteCSV]
// for file-based output.
func ExportCSV(t *Table, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return t.WriteCSV(f)
}

// formatCell renders one cell value as CSV text. json.Number passes through
// verbatim so numeric precision survives the round trip from the API.
func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// ListLiteral renders identifiers as a bracketed, single-quoted list for
// compact display inside a single CSV cell: ['stateid', 'sectorid'].
// An empty list renders as [].
func ListLiteral(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(item)
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}
