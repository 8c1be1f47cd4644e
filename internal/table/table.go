// Package table reads and writes tabular spreadsheet data (XLSX and CSV).
package table

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Sentinel errors for the failure modes callers need to distinguish.
var (
	// ErrNotFound indicates the input file does not exist.
	ErrNotFound = eris.New("table: file not found")
	// ErrColumnMissing indicates a required column is absent from the header row.
	ErrColumnMissing = eris.New("table: column missing")
	// ErrWrite indicates the output file could not be written.
	ErrWrite = eris.New("table: write failed")
	// ErrFormat indicates an unsupported file extension.
	ErrFormat = eris.New("table: unsupported file format")
)

// Table is an ordered set of rows under a single header row.
// Row identity is positional; cell values are strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the named column in the header.
// The match is case-sensitive. A miss lists the available columns.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, col := range t.Header {
		if col == name {
			return i, nil
		}
	}
	return 0, eris.Wrapf(ErrColumnMissing, "column %q not found (available: %s)",
		name, strings.Join(t.Header, ", "))
}

// Cell returns the value at (row, col), or "" when the row is shorter
// than the header. Ragged rows are legal in both input formats.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Column returns the full column in row order, padding ragged rows with "".
func (t *Table) Column(col int) []string {
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, col)
	}
	return out
}
