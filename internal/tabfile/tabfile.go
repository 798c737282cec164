// Package tabfile implements the shared data file: a single plain-text file
// holding several named, row-oriented tables. Each table is a CSV section
// introduced by a "#table <name>" marker line; the first record of a section
// is the column header. The file is the sole source of truth; nothing is
// cached across calls.
package tabfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// markerPrefix introduces a table section. Marker lines are single-field CSV
// records, so quoted fields spanning lines never masquerade as markers.
const markerPrefix = "#table "

// Table is one named table inside the data file.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Workbook is the full ordered table set of one data file.
type Workbook struct {
	Tables []*Table
}

// Table returns the named table, or nil if absent.
func (wb *Workbook) Table(name string) *Table {
	for _, t := range wb.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Replace swaps in the given table, preserving file order; a new name is
// appended at the end.
func (wb *Workbook) Replace(t Table) {
	for i, existing := range wb.Tables {
		if existing.Name == t.Name {
			wb.Tables[i] = &t
			return
		}
	}
	wb.Tables = append(wb.Tables, &t)
}

// ReadWorkbook parses a data file.
func ReadWorkbook(r io.Reader) (*Workbook, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // sections have differing widths

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	wb := &Workbook{}
	var current *Table
	for i, rec := range records {
		if name, ok := markerName(rec); ok {
			if wb.Table(name) != nil {
				return nil, fmt.Errorf("row %d: duplicate table %q", i+1, name)
			}
			current = &Table{Name: name}
			wb.Tables = append(wb.Tables, current)
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("row %d: data before any table marker", i+1)
		}
		if current.Header == nil {
			current.Header = rec
			continue
		}
		if len(rec) != len(current.Header) {
			return nil, fmt.Errorf("row %d: table %q: expected %d fields, got %d",
				i+1, current.Name, len(current.Header), len(rec))
		}
		current.Rows = append(current.Rows, rec)
	}
	return wb, nil
}

// WriteWorkbook serializes a data file.
func WriteWorkbook(w io.Writer, wb *Workbook) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for _, t := range wb.Tables {
		if err := cw.Write([]string{markerPrefix + t.Name}); err != nil {
			return fmt.Errorf("writing marker for %q: %w", t.Name, err)
		}
		if err := cw.Write(t.Header); err != nil {
			return fmt.Errorf("writing header for %q: %w", t.Name, err)
		}
		for i, row := range t.Rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("table %q row %d: %w", t.Name, i+1, err)
			}
		}
	}
	return cw.Error()
}

func markerName(rec []string) (string, bool) {
	if len(rec) != 1 || !strings.HasPrefix(rec[0], markerPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(rec[0], markerPrefix)), true
}
