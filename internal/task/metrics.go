package task

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts task executions by type and outcome.
type Metrics struct {
	executions *prometheus.CounterVec
}

// NewMetrics creates and registers the task counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "task_executions_total",
				Help: "Total number of background task executions by outcome.",
			},
			[]string{"task_type", "outcome"},
		),
	}
	if err := reg.Register(m.executions); err != nil {
		return nil, err
	}
	return m, nil
}

// observe records one finished execution. A nil receiver is a no-op so tests
// can run a pool without a registry.
func (m *Metrics) observe(taskType, outcome string) {
	if m == nil {
		return
	}
	m.executions.WithLabelValues(taskType, outcome).Inc()
}
