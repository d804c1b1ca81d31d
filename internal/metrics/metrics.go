// Package metrics exposes Prometheus instruments for form sessions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-formplay/pkg/form"
)

const namespace = "formplay"

// Submission outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeBlocked  = "blocked"
)

// Metrics groups the instruments. Each instance owns its registry so tests and
// multiple servers do not collide on the default registerer.
type Metrics struct {
	registry *prometheus.Registry

	events           *prometheus.CounterVec
	submissions      *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	sessions         prometheus.Gauge
}

// New creates and registers the instruments.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Form events applied, by type.",
		}, []string{"type"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submit attempts, by outcome.",
		}, []string{"outcome"}),
		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Validations that produced at least one message, by field.",
		}, []string{"field"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Mounted form sessions.",
		}),
	}
	m.registry.MustRegister(m.events, m.submissions, m.validationErrors, m.sessions)
	return m
}

// Registry returns the registry backing the instruments.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Event counts one applied event.
func (m *Metrics) Event(kind form.EventType) {
	m.events.WithLabelValues(string(kind)).Inc()
}

// SessionOpened and SessionClosed track the active session gauge.
func (m *Metrics) SessionOpened() { m.sessions.Inc() }

func (m *Metrics) SessionClosed() { m.sessions.Dec() }

// Hooks returns form hooks that feed the submission and validation counters.
func (m *Metrics) Hooks() form.Hooks {
	return form.Hooks{
		OnValidate: func(field string, messages []string) {
			if len(messages) > 0 {
				m.validationErrors.WithLabelValues(field).Inc()
			}
		},
		OnSubmit: func(form.Values) {
			m.submissions.WithLabelValues(OutcomeAccepted).Inc()
		},
		OnBlocked: func(map[string][]string) {
			m.submissions.WithLabelValues(OutcomeBlocked).Inc()
		},
	}
}
