package lifecycle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Metrics counts lifecycle calls by operation and outcome.
type Metrics struct {
	Operations *prometheus.CounterVec
	Conflicts  *prometheus.CounterVec
}

// NewMetrics registers the lifecycle counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rota_slot_operations_total",
				Help: "Slot lifecycle operations by result",
			},
			[]string{"op", "outcome"},
		),
		Conflicts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rota_slot_conflicts_total",
				Help: "Create and update requests blocked by a local conflict",
			},
			[]string{"op"},
		),
	}
}

func (m *Metrics) record(op Op, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(string(op), outcome).Inc()
	if outcome == OutcomeConflict {
		m.Conflicts.WithLabelValues(string(op)).Inc()
	}
}
