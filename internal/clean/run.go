package clean

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/matthieukhl/salesclean/internal/enrich"
	"github.com/matthieukhl/salesclean/internal/ingest"
	"github.com/matthieukhl/salesclean/internal/models"
	"github.com/matthieukhl/salesclean/internal/types"
)

// State is the outcome of one run
type State string

const (
	StateCleaned        State = "cleaned"
	StateFailed         State = "failed"
	StateNotImplemented State = "not_implemented"
)

// Result is what the host gets back from a run; failures are recorded, not raised
type Result struct {
	RunID       string             `json:"run_id"`
	Marketplace models.Marketplace `json:"marketplace"`
	Source      string             `json:"source"`
	State       State              `json:"state"`
	Table       *models.Table      `json:"-"`
	Fill        enrich.Stats       `json:"fill"`
	Err         error              `json:"-"`
	StartedAt   time.Time          `json:"started_at"`
	Duration    time.Duration      `json:"duration"`
}

// OK reports whether the run produced a table
func (r *Result) OK() bool {
	return r.State == StateCleaned
}

// Stage returns the name of the failing stage, or "" when the run did not fail in a stage
func (r *Result) Stage() string {
	var se *StageError
	if errors.As(r.Err, &se) {
		return se.Stage
	}
	return ""
}

// Run cleans the export at path. The catalog may be nil.
func Run(ctx context.Context, m models.Marketplace, path string, catalog types.Catalog) *Result {
	return run(ctx, m, path, catalog, func(in *ingest.Ingester) (*models.RawTable, error) {
		return in.Load(ctx, path)
	})
}

// RunReader cleans an export read from r; name supplies the file extension
func RunReader(ctx context.Context, m models.Marketplace, name string, r io.Reader, catalog types.Catalog) *Result {
	return run(ctx, m, name, catalog, func(in *ingest.Ingester) (*models.RawTable, error) {
		return in.Read(ctx, name, r)
	})
}

func run(ctx context.Context, m models.Marketplace, source string, catalog types.Catalog, load func(*ingest.Ingester) (*models.RawTable, error)) *Result {
	res := &Result{
		RunID:       uuid.NewString(),
		Marketplace: m,
		Source:      source,
		StartedAt:   time.Now(),
	}
	defer func() { res.Duration = time.Since(res.StartedAt) }()

	transformer, err := New(m)
	if err != nil {
		return res.failed(err)
	}

	layout, _ := LayoutFor(m)
	raw, err := load(ingest.NewIngester(ingest.Options{SheetColumn: layout.SheetColumn}))
	if err != nil {
		err = &StageError{Marketplace: m, Stage: StageIngest, Err: fmt.Errorf("%w: %v", ErrIngestion, err)}
		// Pending marketplaces report not implemented whatever the input; the
		// read error stays on the result for logging.
		if !Implemented(m) {
			res.State = StateNotImplemented
			res.Err = err
			return res
		}
		return res.failed(err)
	}

	table, err := transformer.Transform(ctx, raw)
	if errors.Is(err, ErrNotImplemented) {
		res.State = StateNotImplemented
		res.Err = err
		return res
	}
	if err != nil {
		return res.failed(err)
	}

	if catalog != nil && layout.Lookup != models.LookupNone {
		res.Fill = enrich.NewFiller(catalog, layout.Lookup).Fill(table)
	}

	res.Table = table
	res.State = StateCleaned
	return res
}

func (r *Result) failed(err error) *Result {
	r.State = StateFailed
	r.Err = err
	return r
}
