package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// RunsTotal tracks the total number of target script runs
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gotcha_runs_total",
			Help: "Total number of target script runs",
		},
		[]string{"engine", "outcome"}, // outcome: success, failure
	)

	// RunDuration measures target script execution duration in seconds
	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gotcha_run_duration_seconds",
			Help:    "Target script execution duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"engine", "outcome"},
	)

	// ClassificationsTotal counts failures by the rule that explained them
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gotcha_classifications_total",
			Help: "Failures classified, by matching rule and active pack",
		},
		[]string{"rule", "pack"},
	)

	// WatchReloadsTotal counts watch-mode runs by what triggered them
	WatchReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gotcha_watch_reloads_total",
			Help: "Watch mode runs, by trigger",
		},
		[]string{"trigger"}, // trigger: change, interval
	)

	// ErrorsTotal counts tool-internal errors by component
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gotcha_errors_total",
			Help: "Tool-internal errors by component and type",
		},
		[]string{"component", "error_type"},
	)
)

// RecordRun records one completed run of the target script
func RecordRun(engine, outcome string, duration float64) {
	RunsTotal.WithLabelValues(engine, outcome).Inc()
	RunDuration.WithLabelValues(engine, outcome).Observe(duration)
}

// RecordClassification records which rule explained a failure
func RecordClassification(rule, pack string) {
	ClassificationsTotal.WithLabelValues(rule, pack).Inc()
}

// RecordWatchReload records a watch-mode run trigger
func RecordWatchReload(trigger string) {
	WatchReloadsTotal.WithLabelValues(trigger).Inc()
}

// RecordError records a tool-internal error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
