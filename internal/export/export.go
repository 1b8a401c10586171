package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matthieukhl/salesclean/internal/models"
)

// ErrSerialization wraps every failure to produce the output artifact
var ErrSerialization = errors.New("serialization failed")

// Write materializes table at dest; the extension picks the format (.xlsx or .csv)
func Write(table *models.Table, dest string) error {
	if table == nil {
		return fmt.Errorf("%w: no table to write", ErrSerialization)
	}

	var encode func(io.Writer, *models.Table) error
	switch ext := strings.ToLower(filepath.Ext(dest)); ext {
	case ".xlsx":
		encode = WriteXLSX
	case ".csv":
		encode = WriteCSV
	default:
		return fmt.Errorf("%w: unsupported output type %q", ErrSerialization, ext)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: failed to create %s: %v", ErrSerialization, dir, err)
		}
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: failed to create %s: %v", ErrSerialization, dest, err)
	}
	if err := encode(f, table); err != nil {
		f.Close()
		os.Remove(dest)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %v", ErrSerialization, dest, err)
	}
	return nil
}

// Destination returns the default output path for a marketplace inside dir
func Destination(dir string, m models.Marketplace) string {
	return filepath.Join(dir, m.OutputName())
}
