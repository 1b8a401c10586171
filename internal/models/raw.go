package models

import "strings"

// RawRow is one source row keyed by its original column header
type RawRow struct {
	Values map[string]string
	Sheet  string
	Line   int
}

// Get returns the trimmed value of a column, or "" when absent
func (r RawRow) Get(column string) string {
	return strings.TrimSpace(r.Values[column])
}

// RawTable is the marketplace export as loaded by the ingestor, before any cleaning
type RawTable struct {
	Source  string
	Sheets  []string
	Headers []string
	Rows    []RawRow
}

// HasColumn reports whether the header list contains column
func (t *RawTable) HasColumn(column string) bool {
	for _, h := range t.Headers {
		if h == column {
			return true
		}
	}
	return false
}

// MissingColumns returns the subset of columns absent from the header, in the order given
func (t *RawTable) MissingColumns(columns []string) []string {
	var missing []string
	for _, c := range columns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}
