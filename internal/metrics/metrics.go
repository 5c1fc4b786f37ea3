package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the pipeline counters on an explicit registry. Nothing is
// registered globally; callers own the registry and hand it to the API for
// the /metrics endpoint.
type Metrics struct {
	Registry *prometheus.Registry

	RunsTotal    *prometheus.CounterVec
	FilesLoaded  prometheus.Counter
	FilesSkipped prometheus.Counter
	LastRunRows  prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		Registry: reg,
		RunsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "allocator_pipeline_runs_total",
			Help: "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		FilesLoaded: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "allocator_result_files_loaded_total",
			Help: "Result files parsed successfully.",
		}),
		FilesSkipped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "allocator_result_files_skipped_total",
			Help: "Result files skipped as unparseable.",
		}),
		LastRunRows: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "allocator_last_run_summary_rows",
			Help: "Summary rows produced by the most recent run.",
		}),
	}
}
