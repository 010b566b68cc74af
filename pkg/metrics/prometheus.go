// Package metrics provides Prometheus metrics for the wordle benchmark harness.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "wordle"
	defaultSubsystem = "bench"
)

// defaultTurnBuckets cover one to six turns plus the failure bucket.
var defaultTurnBuckets = []float64{1, 2, 3, 4, 5, 6, 7} //nolint:gochecknoglobals // read-only defaults

// Manager manages all Prometheus metrics for the harness.
type Manager struct {
	namespace    string
	subsystem    string
	turnBuckets  []float64
	timeBuckets  []float64
	customLabels map[string]string
	registry     prometheus.Registerer

	// Game metrics
	gamesTotal     *prometheus.CounterVec
	gameTurns      *prometheus.HistogramVec
	strategyErrors *prometheus.CounterVec

	// Run metrics
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec

	// Queue and worker metrics
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerActive  prometheus.Gauge
	jobsProcessed prometheus.Counter

	// Baseline and comparison metrics
	baselineOps *prometheus.CounterVec
	comparisons *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:    defaultNamespace,
		subsystem:    defaultSubsystem,
		turnBuckets:  defaultTurnBuckets,
		timeBuckets:  prometheus.DefBuckets,
		customLabels: make(map[string]string),
		registry:     prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.gamesTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "games_total",
			Help:        "Total number of games played by strategy and final status",
			ConstLabels: constLabels,
		},
		[]string{"strategy", "status"},
	)

	m.gameTurns = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "game_turns",
			Help:        "Number of guesses taken per solved game",
			Buckets:     m.turnBuckets,
			ConstLabels: constLabels,
		},
		[]string{"strategy"},
	)

	m.strategyErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "strategy_errors_total",
			Help:        "Total number of games aborted by a strategy error",
			ConstLabels: constLabels,
		},
		[]string{"strategy"},
	)

	m.runsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "runs_total",
			Help:        "Total number of harness runs by execution mode and result",
			ConstLabels: constLabels,
		},
		[]string{"mode", "result"},
	)

	m.runDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "run_duration_seconds",
			Help:        "Wall time of a harness run in seconds",
			Buckets:     m.timeBuckets,
			ConstLabels: constLabels,
		},
		[]string{"mode"},
	)

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_size",
		Help:        "Current number of pending game jobs",
		ConstLabels: constLabels,
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_capacity",
		Help:        "Maximum job queue capacity",
		ConstLabels: constLabels,
	})

	m.workerActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "worker_active",
		Help:        "Number of running game workers",
		ConstLabels: constLabels,
	})

	m.jobsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "jobs_processed_total",
		Help:        "Total number of game jobs completed by workers",
		ConstLabels: constLabels,
	})

	m.baselineOps = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "baseline_operations_total",
			Help:        "Total number of baseline store operations",
			ConstLabels: constLabels,
		},
		[]string{"backend", "op", "result"},
	)

	m.comparisons = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "comparisons_total",
			Help:        "Total number of baseline comparisons by verdict",
			ConstLabels: constLabels,
		},
		[]string{"result"},
	)
}

// Game Metrics Functions.

// RecordGame counts a finished game and, when solved, observes its turn count.
func RecordGame(strategy, status string, turns int, solved bool) {
	globalManager.gamesTotal.WithLabelValues(strategy, status).Inc()
	if solved {
		globalManager.gameTurns.WithLabelValues(strategy).Observe(float64(turns))
	}
}

// RecordStrategyError increments the strategy error counter.
func RecordStrategyError(strategy string) {
	globalManager.strategyErrors.WithLabelValues(strategy).Inc()
}

// Run Metrics Functions.

// RecordRun records a finished harness run.
func RecordRun(mode, result string, seconds float64) {
	globalManager.runsTotal.WithLabelValues(mode, result).Inc()
	globalManager.runDuration.WithLabelValues(mode).Observe(seconds)
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// Worker Metrics Functions.

// UpdateWorkerActive sets the number of running workers.
func UpdateWorkerActive(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordJobProcessed increments the processed jobs counter.
func RecordJobProcessed() {
	globalManager.jobsProcessed.Inc()
}

// Baseline Metrics Functions.

// RecordBaselineOperation records a baseline store operation.
func RecordBaselineOperation(backend, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	globalManager.baselineOps.WithLabelValues(backend, op, result).Inc()
}

// RecordComparison records a comparison verdict.
func RecordComparison(result string) {
	globalManager.comparisons.WithLabelValues(result).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the current registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrExportFailed)
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
