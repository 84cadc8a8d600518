// Package metrics exposes Prometheus instrumentation for the solver: pricer
// call volume, column generation, label exploration, branch-and-bound node
// counts, and overall solve duration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide metrics container.
type Metrics struct {
	PricerCallsTotal          *prometheus.CounterVec
	ColumnsAddedTotal         *prometheus.CounterVec
	LabelsProcessedTotal      prometheus.Counter
	ElementaryEscalationTotal prometheus.Counter
	BnBNodesTotal             prometheus.Counter
	SolveDuration             *prometheus.HistogramVec
	SolveObjective            prometheus.Gauge
	ServiceInfo               *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// Init registers the solver's metrics under namespace/subsystem.
func Init(namespace, subsystem string) *Metrics {
	m := &Metrics{
		PricerCallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pricer_calls_total",
				Help:      "Total number of on_price invocations, by mode",
			},
			[]string{"mode"}, // non_elementary, elementary
		),

		ColumnsAddedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "columns_added_total",
				Help:      "Total number of columns added to the restricted master problem",
			},
			[]string{"origin"}, // seed, pricer
		),

		LabelsProcessedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "labels_processed_total",
				Help:      "Total number of labels popped from the pricer's priority queue",
			},
		),

		ElementaryEscalationTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "elementary_escalations_total",
				Help:      "Total number of times pricing escalated from non-elementary to elementary mode",
			},
		),

		BnBNodesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bnb_nodes_total",
				Help:      "Total number of branch-and-bound nodes explored",
			},
		),

		SolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of full orchestrator.Solve calls",
				Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
			[]string{"status"},
		),

		SolveObjective: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "last_objective_value",
				Help:      "Objective value of the most recently completed solve",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service build information",
			},
			[]string{"version"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the process-wide metrics, initializing defaults if Init was
// never called.
func Get() *Metrics {
	if defaultMetrics == nil {
		return Init("vrptw", "")
	}
	return defaultMetrics
}

// RecordPricerCall records one on_price invocation and the columns it
// returned.
func (m *Metrics) RecordPricerCall(mode string, columnsFound int) {
	m.PricerCallsTotal.WithLabelValues(mode).Inc()
	if columnsFound > 0 {
		m.ColumnsAddedTotal.WithLabelValues("pricer").Add(float64(columnsFound))
	}
}

// RecordSeedColumns records the trivial columns seeded before branch-and-price
// starts.
func (m *Metrics) RecordSeedColumns(n int) {
	m.ColumnsAddedTotal.WithLabelValues("seed").Add(float64(n))
}

// RecordLabelsProcessed records labels popped from the pricer's queue.
func (m *Metrics) RecordLabelsProcessed(n int) {
	m.LabelsProcessedTotal.Add(float64(n))
}

// RecordElementaryEscalation records one non-elementary-to-elementary
// escalation.
func (m *Metrics) RecordElementaryEscalation() {
	m.ElementaryEscalationTotal.Inc()
}

// RecordBnBNode records one branch-and-bound node explored.
func (m *Metrics) RecordBnBNode() {
	m.BnBNodesTotal.Inc()
}

// RecordSolve records the outcome and duration of a full solve.
func (m *Metrics) RecordSolve(status string, duration time.Duration, objVal float64) {
	m.SolveDuration.WithLabelValues(status).Observe(duration.Seconds())
	if status == "optimal" {
		m.SolveObjective.Set(objVal)
	}
}

// SetServiceInfo publishes a static build-version gauge.
func (m *Metrics) SetServiceInfo(version string) {
	m.ServiceInfo.WithLabelValues(version).Set(1)
}

// Handler returns the HTTP handler serving /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartServer runs a blocking HTTP server exposing /metrics on port.
func StartServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}
