package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// readXLSX returns every sheet of the workbook in tab order. Raw cell values are used
// so date cells reach the date parser as Excel serial numbers rather than as text
// rendered with whatever number format the exporter picked.
func readXLSX(ctx context.Context, r io.Reader) ([]sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	sheets := make([]sheet, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		sheets = append(sheets, sheet{name: name, cells: rows})
	}
	return sheets, nil
}
