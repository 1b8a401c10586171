package clean

import (
	"errors"
	"fmt"

	"github.com/matthieukhl/salesclean/internal/models"
)

// Failure taxonomy. Every error returned by this package wraps exactly one of these.
var (
	ErrIngestion          = errors.New("ingestion failed")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrDateParse          = errors.New("date parse failed")
	ErrMalformedValue     = errors.New("malformed value")
	ErrNotImplemented     = errors.New("cleaning not implemented")
	ErrUnknownMarketplace = errors.New("unknown marketplace")
)

// StageError records which step of a marketplace transform aborted the run
type StageError struct {
	Marketplace models.Marketplace
	Stage       string
	Err         error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s cleaning failed at %s: %v", e.Marketplace, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// rowError points at the offending source row
func rowError(kind error, row models.RawRow, column, value string) error {
	where := fmt.Sprintf("line %d", row.Line)
	if row.Sheet != "" {
		where = fmt.Sprintf("sheet %q line %d", row.Sheet, row.Line)
	}
	return fmt.Errorf("%w: %s column %q value %q", kind, where, column, value)
}
