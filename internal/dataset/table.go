// Package dataset reads regional susceptibility tables and builds the ranked
// isolate pool the selection pipeline consumes.
package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Column layout of a regional table.
const (
	IsolateColumn         = 0
	PathogenColumn        = 1
	FirstAntibioticColumn = 3
)

// ErrNoHeader is returned for tables without a usable header row.
var ErrNoHeader = errors.New("table has no header row")

// Table is one regional dataset ("matrix US", "matrix EU"). Column 0 holds
// the isolate id, column 1 the pathogen, column 2 is not used and every
// further column holds the raw report cells of one antibiotic.
type Table struct {
	Region string
	Header []string
	Rows   [][]string

	columns map[string]int
}

func newTable(region string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	if len(header) < FirstAntibioticColumn {
		return nil, fmt.Errorf("%w: need at least %d columns, got %d", ErrNoHeader, FirstAntibioticColumn, len(header))
	}

	t := &Table{Region: region, Header: header, columns: make(map[string]int, len(header))}
	for i, h := range header {
		if _, dup := t.columns[h]; !dup {
			t.columns[h] = i
		}
	}

	for i, rec := range records[1:] {
		row := make([]string, len(header))
		copy(row, rec)
		// Summary rows below the isolate matrix have no pathogen.
		if strings.TrimSpace(row[PathogenColumn]) == "" {
			slog.Debug("Table ends before summary rows", "region", region, "row", i+2)
			break
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Antibiotics returns the antibiotic column names in table order.
func (t *Table) Antibiotics() []string {
	return t.Header[FirstAntibioticColumn:]
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.columns[name]
	return i, ok
}

// Cell returns the value of the named column in row, or "" and false when the
// table has no such column.
func (t *Table) Cell(row []string, column string) (string, bool) {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return "", false
	}
	return row[i], true
}
