package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/matthieukhl/salesclean/internal/models"
)

// SheetName is the only sheet of a cleaned workbook
const SheetName = "Sheet1"

const dateFormat = "yyyy-mm-dd"

// WriteXLSX writes the table as a single sheet workbook
func WriteXLSX(w io.Writer, table *models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: header style: %v", ErrSerialization, err)
	}
	numFmt := dateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("%w: date style: %v", ErrSerialization, err)
	}

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c.Label
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("%w: header row: %v", ErrSerialization, err)
	}
	last, _ := excelize.CoordinatesToCellName(max(len(table.Columns), 1), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("%w: header row: %v", ErrSerialization, err)
	}

	for i, rec := range table.Records {
		row := make([]interface{}, len(table.Columns))
		for j, c := range table.Columns {
			row[j] = rec.Value(c.Field)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrSerialization, i+2, err)
		}
	}

	// Styles go on after the values: writing a time.Time resets the cell format.
	for j, c := range table.Columns {
		col, _ := excelize.ColumnNumberToName(j + 1)
		width := 14.0
		if c.Field == models.FieldChannelItemName {
			width = 48
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("%w: column width: %v", ErrSerialization, err)
		}
		if c.Field != models.FieldDate || len(table.Records) == 0 {
			continue
		}
		top, _ := excelize.CoordinatesToCellName(j+1, 2)
		bottom, _ := excelize.CoordinatesToCellName(j+1, len(table.Records)+1)
		if err := f.SetCellStyle(SheetName, top, bottom, dateStyle); err != nil {
			return fmt.Errorf("%w: date column: %v", ErrSerialization, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}
