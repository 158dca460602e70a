package observability

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/voyager/pkg/domain"
)

const namespace = "voyager"

// Metrics holds the collectors fed by Hooks.
type Metrics struct {
	Components *prometheus.CounterVec
	Documents  *prometheus.CounterVec
	Nodes      *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg skips
// registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Components: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "component_events_total",
			Help:      "Component lifecycle events by event type and component kind.",
		}, []string{"event", "kind"}),
		Documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_operations_total",
			Help:      "Document open and deflate passes by outcome.",
		}, []string{"event", "result", "merged"}),
		Nodes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_nodes",
			Help:      "Number of nodes per successful document pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"event"}),
	}
	if reg != nil {
		reg.MustRegister(m.Components, m.Documents, m.Nodes)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	component := func(_ context.Context, e *domain.ComponentEvent) {
		m.Components.WithLabelValues(string(e.Type), e.Kind).Inc()
	}
	document := func(_ context.Context, e *domain.DocumentEvent) {
		result := "ok"
		if e.Err != nil {
			result = "error"
		}
		m.Documents.WithLabelValues(string(e.Type), result, strconv.FormatBool(e.Merged)).Inc()
		if e.Err == nil {
			m.Nodes.WithLabelValues(string(e.Type)).Observe(float64(e.Nodes))
		}
	}
	return domain.LifecycleHooks{
		OnComponentCreate:  component,
		OnComponentUpdate:  component,
		OnComponentDispose: component,
		OnDocumentOpen:     document,
		OnDocumentDeflate:  document,
	}
}
