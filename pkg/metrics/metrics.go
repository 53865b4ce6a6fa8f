package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Create outcomes.
const (
	ResultCreated      = "created"
	ResultInvalid      = "invalid"
	ResultUnauthorized = "unauthorized"
	ResultConflict     = "conflict"
	ResultError        = "error"
)

// Metrics provides observability for the policy service.
type Metrics struct {
	// Create outcomes by result
	CreateOutcome *prometheus.CounterVec

	CreateLatency prometheus.Histogram
	ListLatency   prometheus.Histogram
}

// New registers the policy metrics on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		CreateOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthagent_policy_create_total",
			Help: "Total policy create attempts by result",
		}, []string{"result"}),

		CreateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthagent_policy_create_duration_seconds",
			Help:    "Duration of policy creation including validation and insert",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		ListLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthagent_policy_list_duration_seconds",
			Help:    "Duration of listing all policies",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementCreate records a create outcome.
func (m *Metrics) IncrementCreate(result string) {
	if m != nil {
		m.CreateOutcome.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) ObserveCreateLatency(d time.Duration) {
	if m != nil {
		m.CreateLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveListLatency(d time.Duration) {
	if m != nil {
		m.ListLatency.Observe(d.Seconds())
	}
}
