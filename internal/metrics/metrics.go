package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// Metrics holds Prometheus collectors for form submissions.
type Metrics struct {
	Submissions      *prometheus.CounterVec
	ValidationErrors *prometheus.CounterVec
	ActiveSessions   prometheus.Gauge
}

// New registers the collectors on reg. Each server gets its own registry so tests
// can build several servers in one process.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: config.MetricSubmissions,
			Help: "Total number of submitted birthdates, labeled by outcome",
		}, []string{config.LabelOutcome}),
		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: config.MetricValidationErrors,
			Help: "Total number of field validation errors, labeled by field and kind",
		}, []string{config.LabelField, config.LabelKind}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: config.MetricActiveSessions,
			Help: "Current number of browser sessions holding a form",
		}),
	}
}

// ObserveSubmit records the outcome of one submit and each field error it produced.
func (m *Metrics) ObserveSubmit(result engine.ValidationResult) {
	if result.OK() {
		m.Submissions.WithLabelValues(config.OutcomeOK).Inc()
		return
	}
	m.Submissions.WithLabelValues(config.OutcomeInvalid).Inc()

	for name, fe := range result {
		kind := config.KindInvalid
		if errors.Is(fe, engine.ErrMissingField) {
			kind = config.KindMissing
		}
		m.ValidationErrors.WithLabelValues(string(name), kind).Inc()
	}
}

// SetActiveSessions reports the current session count.
func (m *Metrics) SetActiveSessions(count int) {
	m.ActiveSessions.Set(float64(count))
}
