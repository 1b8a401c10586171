package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matthieukhl/salesclean/internal/models"
)

// Supported source formats
const (
	FormatCSV  = ".csv"
	FormatXLSX = ".xlsx"
	FormatXLS  = ".xls"
)

// Options controls how sheets are combined into one raw table
type Options struct {
	// SheetColumn, when set, is added to every row and holds the name of the sheet
	// (or file stem for CSV) the row was read from.
	SheetColumn string
}

// Ingester loads marketplace export files into raw tables
type Ingester struct {
	opts Options
}

func NewIngester(opts Options) *Ingester {
	return &Ingester{opts: opts}
}

// Load opens path and reads it according to its extension
func (i *Ingester) Load(ctx context.Context, path string) (*models.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return i.Read(ctx, filepath.Base(path), f)
}

// Read parses a file handle; name is only used for its extension and as the CSV sheet name
func (i *Ingester) Read(ctx context.Context, name string, r io.Reader) (*models.RawTable, error) {
	ext := strings.ToLower(filepath.Ext(name))

	var (
		sheets []sheet
		err    error
	)
	switch ext {
	case FormatCSV:
		var s sheet
		s, err = readCSV(r, strings.TrimSuffix(name, filepath.Ext(name)))
		sheets = []sheet{s}
	case FormatXLSX:
		sheets, err = readXLSX(ctx, r)
	case FormatXLS:
		var data []byte
		data, err = io.ReadAll(r)
		if err == nil {
			sheets, err = readXLS(ctx, bytes.NewReader(data))
		}
	default:
		return nil, fmt.Errorf("unsupported file type %q (expected .csv, .xlsx or .xls)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	table, err := i.combine(name, sheets)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return table, nil
}

// sheet is one grid of cells as read from a source, header row included
type sheet struct {
	name  string
	cells [][]string
}

// combine turns sheets into one table: header row per sheet, duplicated header rows
// removed, optional sheet tagging, sheets concatenated in workbook order.
func (i *Ingester) combine(source string, sheets []sheet) (*models.RawTable, error) {
	table := &models.RawTable{Source: source}
	seen := make(map[string]bool)

	for _, s := range sheets {
		header, body, offset, ok := splitHeader(s.cells)
		if !ok {
			// Trailing empty sheets are common in hand-assembled workbooks.
			if len(sheets) > 1 {
				continue
			}
			return nil, fmt.Errorf("sheet %q has no header row", s.name)
		}
		table.Sheets = append(table.Sheets, s.name)

		for _, h := range header {
			if h != "" && !seen[h] {
				seen[h] = true
				table.Headers = append(table.Headers, h)
			}
		}

		for n, cells := range body {
			if isBlankRow(cells) || isRepeatedHeader(header, cells) {
				continue
			}
			values := make(map[string]string, len(header)+1)
			for col, h := range header {
				if h == "" {
					continue
				}
				if _, dup := values[h]; dup {
					continue
				}
				if col < len(cells) {
					values[h] = cells[col]
				} else {
					values[h] = ""
				}
			}
			if i.opts.SheetColumn != "" {
				values[i.opts.SheetColumn] = s.name
			}
			// +2: one for the header row, one for 1-based numbering
			table.Rows = append(table.Rows, models.RawRow{Values: values, Sheet: s.name, Line: offset + n + 2})
		}
	}

	if len(table.Sheets) == 0 {
		return nil, fmt.Errorf("no sheet with a header row found")
	}
	if i.opts.SheetColumn != "" && !seen[i.opts.SheetColumn] {
		table.Headers = append(table.Headers, i.opts.SheetColumn)
	}
	return table, nil
}

// splitHeader returns the trimmed header row, the rows following it and the header's index
func splitHeader(cells [][]string) ([]string, [][]string, int, bool) {
	for idx, row := range cells {
		if isBlankRow(row) {
			continue
		}
		header := make([]string, len(row))
		for i, h := range row {
			header[i] = strings.TrimSpace(h)
		}
		return header, cells[idx+1:], idx, true
	}
	return nil, nil, 0, false
}

// isRepeatedHeader reports a row whose first cell equals the first header label,
// the artifact left behind when several exports are pasted into one sheet.
func isRepeatedHeader(header, cells []string) bool {
	if len(header) == 0 || len(cells) == 0 || header[0] == "" {
		return false
	}
	return strings.TrimSpace(cells[0]) == header[0]
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
