package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matthieukhl/salesclean/internal/clean"
)

type Registry struct {
	reg         *prometheus.Registry
	Runs        *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	RowsIn      *prometheus.CounterVec
	RowsOut     *prometheus.CounterVec
	RowsDropped *prometheus.CounterVec
	Fills       *prometheus.CounterVec
	RunLatency  *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "salesclean_runs_total"}, []string{"marketplace", "state"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "salesclean_failures_total"}, []string{"marketplace", "stage"})
	rowsIn := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "salesclean_rows_in_total"}, []string{"marketplace"})
	rowsOut := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "salesclean_rows_out_total"}, []string{"marketplace"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "salesclean_rows_dropped_total"}, []string{"marketplace", "reason"})
	fills := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "salesclean_lookup_fills_total"}, []string{"marketplace", "result"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "salesclean_run_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"marketplace"})

	r.MustRegister(runs, failures, rowsIn, rowsOut, dropped, fills, latency)
	return &Registry{
		reg:         r,
		Runs:        runs,
		Failures:    failures,
		RowsIn:      rowsIn,
		RowsOut:     rowsOut,
		RowsDropped: dropped,
		Fills:       fills,
		RunLatency:  latency,
	}
}

// Observe records the outcome of one run
func (r *Registry) Observe(res *clean.Result) {
	m := string(res.Marketplace)
	r.Runs.WithLabelValues(m, string(res.State)).Inc()
	r.RunLatency.WithLabelValues(m).Observe(res.Duration.Seconds())

	if res.State == clean.StateFailed {
		stage := res.Stage()
		if stage == "" {
			stage = "setup"
		}
		r.Failures.WithLabelValues(m, stage).Inc()
		return
	}
	if res.Table == nil {
		return
	}
	st := res.Table.Stats
	r.RowsIn.WithLabelValues(m).Add(float64(st.RowsIn))
	r.RowsOut.WithLabelValues(m).Add(float64(st.RowsOut))
	r.RowsDropped.WithLabelValues(m, "missing_required").Add(float64(st.MissingRequired))
	r.RowsDropped.WithLabelValues(m, "excluded_status").Add(float64(st.Excluded))
	r.Fills.WithLabelValues(m, "matched").Add(float64(res.Fill.Matched))
	r.Fills.WithLabelValues(m, "missed").Add(float64(res.Fill.Missed))
}

// Gatherer exposes the underlying registry, mainly for tests
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
