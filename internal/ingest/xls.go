package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// readXLS reads a legacy BIFF workbook
func readXLS(ctx context.Context, r io.ReadSeeker) ([]sheet, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel 97-2003 file: %w", err)
	}

	var sheets []sheet
	for i := 0; i < wb.NumSheets(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		var cells [][]string
		for n := 0; n <= int(ws.MaxRow); n++ {
			row := ws.Row(n)
			if row == nil {
				cells = append(cells, nil)
				continue
			}
			rec := make([]string, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				rec[c] = row.Col(c)
			}
			cells = append(cells, rec)
		}
		sheets = append(sheets, sheet{name: ws.Name, cells: cells})
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	return sheets, nil
}
