package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter

	// engine counters
	CounterMesocyclesCreated  prometheus.Counter
	CounterWorkoutTransitions *prometheus.CounterVec
	CounterSetTransitions     *prometheus.CounterVec
	CounterReconciledSets     *prometheus.CounterVec
	CounterPreservedSets      prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("mesocycles", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("mesocycles", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})

	counterMesocyclesCreated := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "mesocycles_created",
		Help:      "The total number of generated mesocycles",
	})
	counterWorkoutTransitions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workout_transitions",
		Help:      "The total number of workout status transitions",
	}, []string{"action"})
	counterSetTransitions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "set_transitions",
		Help:      "The total number of workout set status transitions",
	}, []string{"action"})
	counterReconciledSets := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "reconciled_sets",
		Help:      "The total number of sets touched by plan modifications",
	}, []string{"operation"})
	counterPreservedSets := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "preserved_logged_sets",
		Help:      "The total number of logged sets kept while removing an exercise",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "current_requests",
		Help:        "Current number of requests served",
		ConstLabels: nil,
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "life_signal",
		Help:        "Shows whether the service is alive",
		ConstLabels: nil,
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterRateLimitedRequests: counterRateLimitedRequests,
		CounterMesocyclesCreated:   counterMesocyclesCreated,
		CounterWorkoutTransitions:  counterWorkoutTransitions,
		CounterSetTransitions:      counterSetTransitions,
		CounterReconciledSets:      counterReconciledSets,
		CounterPreservedSets:       counterPreservedSets,
		GaugeRequests:              gaugeRequests,
		GaugeLifeSignal:            gaugeLifeSignal,
		HistogramRequestDuration:   histogramRequestDuration,
	}
}

// Nil-safe helpers, the engine services run without metrics in tests.

func (m *Manager) IncMesocyclesCreated() {
	if m == nil {
		return
	}
	m.CounterMesocyclesCreated.Inc()
}

func (m *Manager) IncWorkoutTransition(action string) {
	if m == nil {
		return
	}
	m.CounterWorkoutTransitions.WithLabelValues(action).Inc()
}

func (m *Manager) IncSetTransition(action string) {
	if m == nil {
		return
	}
	m.CounterSetTransitions.WithLabelValues(action).Inc()
}

func (m *Manager) AddReconciledSets(operation string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.CounterReconciledSets.WithLabelValues(operation).Add(float64(count))
}

func (m *Manager) AddPreservedSets(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.CounterPreservedSets.Add(float64(count))
}
