package survey

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Language outcomes counted by Metrics.
const (
	OutcomeExcluded = "excluded" // an unparsable member
	OutcomeUngated  = "ungated"  // no stop or affricate voicing opposition
	OutcomeClear    = "clear"    // gated, nothing flagged
	OutcomeFlagged  = "flagged"
)

// Metrics collects survey counters in a private registry so runs in one
// process do not share state.
type Metrics struct {
	registry *prometheus.Registry

	// Languages counts languages by outcome.
	Languages *prometheus.CounterVec

	// AnalysisSeconds observes the time spent detecting one language.
	AnalysisSeconds prometheus.Histogram

	// Runs counts completed runs.
	Runs prometheus.Counter
}

// NewMetrics creates and registers the survey metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Languages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minopp",
			Subsystem: "survey",
			Name:      "languages_total",
			Help:      "Languages surveyed by outcome",
		}, []string{"outcome"}),
		AnalysisSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "minopp",
			Subsystem: "survey",
			Name:      "analysis_duration_seconds",
			Help:      "Time spent analyzing one inventory",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
		}),
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minopp",
			Subsystem: "survey",
			Name:      "runs_total",
			Help:      "Completed survey runs",
		}),
	}
	m.registry.MustRegister(m.Languages, m.AnalysisSeconds, m.Runs)
	return m
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in the Prometheus text format, for the
// node exporter's textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) language(outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Languages.WithLabelValues(outcome).Add(float64(n))
}
