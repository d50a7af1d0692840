package doctree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics of a document. A nil *metrics discards all observations.
type metrics struct {
	mutations     *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	undos         prometheus.Counter
	redos         prometheus.Counter
	notifications prometheus.Counter
	nodes         prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	f := promauto.With(reg)
	return &metrics{
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nodetree_mutations_total",
			Help: "Mutations recorded in the history, by operation",
		}, []string{"op"}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nodetree_mutations_rejected_total",
			Help: "Mutations rejected without state change, by error kind",
		}, []string{"reason"}),
		undos: f.NewCounter(prometheus.CounterOpts{
			Name: "nodetree_undo_total",
			Help: "Patches undone",
		}),
		redos: f.NewCounter(prometheus.CounterOpts{
			Name: "nodetree_redo_total",
			Help: "Patches redone",
		}),
		notifications: f.NewCounter(prometheus.CounterOpts{
			Name: "nodetree_notifications_total",
			Help: "Notification keys signalled",
		}),
		nodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "nodetree_nodes",
			Help: "Nodes currently held in the document",
		}),
	}
}

func (m *metrics) mutation(op Op) {
	if m != nil {
		m.mutations.WithLabelValues(op.String()).Inc()
	}
}

func (m *metrics) reject(err error) {
	if m != nil {
		m.rejected.WithLabelValues(reasonOf(err)).Inc()
	}
}

func (m *metrics) undo() {
	if m != nil {
		m.undos.Inc()
	}
}

func (m *metrics) redo() {
	if m != nil {
		m.redos.Inc()
	}
}

func (m *metrics) notified() {
	if m != nil {
		m.notifications.Inc()
	}
}

func (m *metrics) size(n int) {
	if m != nil {
		m.nodes.Set(float64(n))
	}
}
