// Package metrics provides Prometheus metrics for policy evaluation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all policy evaluation metrics.
type Metrics struct {
	EvaluationsTotal   *prometheus.CounterVec // by kind (resolution, interception) and outcome
	EvaluationDuration *prometheus.HistogramVec
	RulesFiredTotal    *prometheus.CounterVec // by policy
	TraceWriteFailures prometheus.Counter
	AuditFailures      prometheus.Counter
	LoadedPolicies     prometheus.Gauge
}

// New registers all policy metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		EvaluationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "esb_policy_evaluations_total",
			Help: "Total number of policy evaluations by kind and outcome",
		}, []string{"kind", "outcome"}),
		EvaluationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esb_policy_evaluation_duration_seconds",
			Help:    "Duration of policy evaluations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"kind"}),
		RulesFiredTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "esb_policy_rules_fired_total",
			Help: "Total number of rules fired by policy",
		}, []string{"policy"}),
		TraceWriteFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "esb_policy_trace_write_failures_total",
			Help: "Total number of evaluation traces that could not be written",
		}),
		AuditFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "esb_policy_audit_failures_total",
			Help: "Total number of audit events that could not be published",
		}),
		LoadedPolicies: f.NewGauge(prometheus.GaugeOpts{
			Name: "esb_policy_loaded_policies",
			Help: "Number of rule sets loaded into the engine",
		}),
	}
}

func (m *Metrics) ObserveEvaluation(kind, outcome string, d time.Duration) {
	m.EvaluationsTotal.WithLabelValues(kind, outcome).Inc()
	m.EvaluationDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) AddRulesFired(policy string, n int) {
	if n > 0 {
		m.RulesFiredTotal.WithLabelValues(policy).Add(float64(n))
	}
}

func (m *Metrics) IncrementTraceWriteFailure() {
	m.TraceWriteFailures.Inc()
}

func (m *Metrics) IncrementAuditFailure() {
	m.AuditFailures.Inc()
}

func (m *Metrics) SetLoadedPolicies(n int) {
	m.LoadedPolicies.Set(float64(n))
}
