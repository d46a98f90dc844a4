package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type MetricsSuite struct {
	suite.Suite
	m *Metrics
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsSuite))
}

func (s *MetricsSuite) SetupTest() {
	s.m = New(prometheus.NewRegistry())
}

func (s *MetricsSuite) TestObserveEvaluation() {
	s.m.ObserveEvaluation("resolution", "resolved", 20*time.Millisecond)
	s.m.ObserveEvaluation("resolution", "resolved", 20*time.Millisecond)
	s.m.ObserveEvaluation("interception", "failed", time.Millisecond)

	s.Equal(2.0, testutil.ToFloat64(s.m.EvaluationsTotal.WithLabelValues("resolution", "resolved")))
	s.Equal(1.0, testutil.ToFloat64(s.m.EvaluationsTotal.WithLabelValues("interception", "failed")))
}

func (s *MetricsSuite) TestRulesFiredIgnoresZero() {
	s.m.AddRulesFired("Routing 1.0", 0)
	s.m.AddRulesFired("Routing 1.0", 3)

	s.Equal(3.0, testutil.ToFloat64(s.m.RulesFiredTotal.WithLabelValues("Routing 1.0")))
}

func (s *MetricsSuite) TestGaugesAndCounters() {
	s.m.SetLoadedPolicies(4)
	s.m.IncrementAuditFailure()
	s.m.IncrementTraceWriteFailure()

	s.Equal(4.0, testutil.ToFloat64(s.m.LoadedPolicies))
	s.Equal(1.0, testutil.ToFloat64(s.m.AuditFailures))
	s.Equal(1.0, testutil.ToFloat64(s.m.TraceWriteFailures))
}
