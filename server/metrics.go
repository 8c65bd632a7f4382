package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inference-sim/seek-sim/sim"
)

// Metrics holds the server's Prometheus collectors on a private registry,
// so several servers (tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	plans        *prometheus.CounterVec
	seekDistance *prometheus.HistogramVec
	requestCount *prometheus.HistogramVec
	httpDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		plans: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seeksim_plans_total",
				Help: "Schedules computed, by policy and outcome",
			},
			[]string{"policy", "outcome"}, // ok, unknown_policy, invalid_position, error
		),
		seekDistance: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seeksim_total_seek_distance",
				Help:    "Total head movement per schedule, in tracks",
				Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000},
			},
			[]string{"policy"},
		),
		requestCount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seeksim_requests_per_plan",
				Help:    "Number of pending requests per schedule",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
			},
			[]string{"policy"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seeksim_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds by route and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
	}
}

// ObservePlan records a successful schedule.
func (m *Metrics) ObservePlan(res *sim.ScheduleResult) {
	m.plans.WithLabelValues(res.AlgorithmName, "ok").Inc()
	m.seekDistance.WithLabelValues(res.AlgorithmName).Observe(float64(res.TotalDistance))
	m.requestCount.WithLabelValues(res.AlgorithmName).Observe(float64(len(res.ProcessedOrder)))
}

// ObservePlanError records a failed schedule. Unknown policy names are
// folded into one label value to keep cardinality bounded.
func (m *Metrics) ObservePlanError(policy string, err error) {
	switch {
	case errors.Is(err, sim.ErrUnknownPolicy):
		m.plans.WithLabelValues("unknown", "unknown_policy").Inc()
	case errors.Is(err, sim.ErrInvalidPosition):
		m.plans.WithLabelValues(sim.CanonicalPolicyName(policy), "invalid_position").Inc()
	default:
		m.plans.WithLabelValues(sim.CanonicalPolicyName(policy), "error").Inc()
	}
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(route string, status int, seconds float64) {
	m.httpDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(seconds)
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
