package ingest

import (
	"encoding/csv"
	"errors"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readCSV reads a delimited export. A UTF-8 or UTF-16 byte order mark is honoured
// and stripped; files without one are read as UTF-8.
func readCSV(r io.Reader, name string) (sheet, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var cells [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sheet{}, err
		}
		cells = append(cells, rec)
	}
	return sheet{name: name, cells: cells}, nil
}
