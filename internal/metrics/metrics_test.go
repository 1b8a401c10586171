package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matthieukhl/salesclean/internal/clean"
	"github.com/matthieukhl/salesclean/internal/enrich"
	"github.com/matthieukhl/salesclean/internal/models"
)

func TestObserveCleanedRun(t *testing.T) {
	r := NewRegistry()
	r.Observe(&clean.Result{
		Marketplace: models.Noon,
		State:       clean.StateCleaned,
		Duration:    time.Second,
		Table:       &models.Table{Stats: models.TableStats{RowsIn: 5, MissingRequired: 1, Excluded: 2, RowsOut: 2}},
		Fill:        enrich.Stats{Matched: 1, Missed: 1},
	})

	if got := value(t, r, "salesclean_runs_total", "Noon", "cleaned"); got != 1 {
		t.Fatalf("runs: got=%v want=1", got)
	}
	if got := value(t, r, "salesclean_rows_in_total", "Noon"); got != 5 {
		t.Fatalf("rows in: got=%v want=5", got)
	}
	if got := value(t, r, "salesclean_rows_dropped_total", "Noon", "excluded_status"); got != 2 {
		t.Fatalf("excluded: got=%v want=2", got)
	}
}

func TestObserveFailedRun(t *testing.T) {
	r := NewRegistry()
	r.Observe(&clean.Result{
		Marketplace: models.Amazon,
		State:       clean.StateFailed,
		Err:         &clean.StageError{Marketplace: models.Amazon, Stage: clean.StageDates, Err: clean.ErrDateParse},
	})
	r.Observe(&clean.Result{Marketplace: models.Amazon, State: clean.StateFailed, Err: errors.New("boom")})

	if got := value(t, r, "salesclean_failures_total", "Amazon", clean.StageDates); got != 1 {
		t.Fatalf("dates failures: got=%v want=1", got)
	}
	if got := value(t, r, "salesclean_failures_total", "Amazon", "setup"); got != 1 {
		t.Fatalf("setup failures: got=%v want=1", got)
	}
}

// value returns the sample of a counter whose label values equal labels, in order
func value(t *testing.T, r *Registry, name string, labels ...string) float64 {
	t.Helper()
	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	want := strings.Join(labels, ",")
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			var got []string
			for _, lp := range m.GetLabel() {
				got = append(got, lp.GetValue())
			}
			if strings.Join(got, ",") == want {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
