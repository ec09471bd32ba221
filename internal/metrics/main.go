package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts planner activity. One instance is registered per process.
type Metrics struct {
	MutationsTotal   *prometheus.CounterVec
	FailedStepsTotal *prometheus.CounterVec
	EventsCreated    prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		MutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sayplan",
			Name:      "mutations_total",
			Help:      "Number of planned mutations by transition and strategy",
		}, []string{"transition", "strategy"}),
		FailedStepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sayplan",
			Name:      "failed_steps_total",
			Help:      "Number of failed event store steps by step kind",
		}, []string{"step"}),
		EventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sayplan",
			Name:      "events_created_total",
			Help:      "Number of created events, occurrences included",
		}),
	}

	prometheus.MustRegister(
		m.MutationsTotal, m.FailedStepsTotal, m.EventsCreated,
	)

	return m
}
