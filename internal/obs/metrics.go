package obs

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the dispatch-core instrument set. Every method is nil-safe so
// services can run without metrics in unit tests.
type Metrics struct {
	ClaimsTotal      *prometheus.CounterVec // result=won|conflict|not_found|error
	TransitionsTotal *prometheus.CounterVec // action=submit|start|complete|cancel, result=ok|conflict|forbidden|not_found|error
	EventsPublished  *prometheus.CounterVec // kind=request.*
	EventsDropped    prometheus.Counter     // hub deliveries dropped on full subscriber buffers
	StoreLatency     *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ClaimsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_claims_total",
				Help: "Claim attempts by outcome",
			},
			[]string{"result"},
		),
		TransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_transitions_total",
				Help: "Lifecycle transitions by action and outcome",
			},
			[]string{"action", "result"},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_events_published_total",
				Help: "Fan-out events published by kind",
			},
			[]string{"kind"},
		),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_events_dropped_total",
			Help: "Hub deliveries dropped because a subscriber buffer was full",
		}),
		StoreLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dispatch_store_latency_ms",
				Help:    "Latency of request-store operations (ms)",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"op"},
		),
	}

	reg.MustRegister(
		m.ClaimsTotal,
		m.TransitionsTotal,
		m.EventsPublished,
		m.EventsDropped,
		m.StoreLatency,
	)
	return m
}

func (m *Metrics) Claim(result string) {
	if m == nil {
		return
	}
	m.ClaimsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) Transition(action, result string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(action, result).Inc()
}

func (m *Metrics) EventPublished(kind string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(kind).Inc()
}

func (m *Metrics) EventDropped() {
	if m == nil {
		return
	}
	m.EventsDropped.Inc()
}

func (m *Metrics) ObserveStoreMS(op string, ms float64) {
	if m == nil {
		return
	}
	m.StoreLatency.WithLabelValues(op).Observe(ms)
}
