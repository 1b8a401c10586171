package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/matthieukhl/salesclean/internal/models"
)

// utf8BOM lets spreadsheet applications detect the encoding
const utf8BOM = "\ufeff"

// WriteCSV writes a header row and one line per record
func WriteCSV(w io.Writer, table *models.Table) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Header()); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	line := make([]string, len(table.Columns))
	for _, rec := range table.Records {
		for j, c := range table.Columns {
			line[j] = rec.Text(c.Field)
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}
