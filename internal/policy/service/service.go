// Package service evaluates resolution and interception policies: it builds
// the fact set, selects tester or production mode, runs the rules and
// validates the resulting directives.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"esbresolver/internal/policy/audit"
	"esbresolver/internal/policy/inquiry"
	"esbresolver/internal/policy/metrics"
	"esbresolver/internal/policy/models"
	"esbresolver/internal/policy/ruleengine"
	"esbresolver/internal/policy/tracking"
	dErrors "esbresolver/pkg/domain-errors"
	"esbresolver/pkg/platform/middleware/request"
	"esbresolver/pkg/validation"
)

const (
	kindResolution   = "resolution"
	kindInterception = "interception"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Auditor

// Auditor receives one event per evaluation. Failures never fail the
// evaluation.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config selects the evaluation mode and diagnostics.
type Config struct {
	// TesterMode loads rule sets from the rule store instead of the engine's
	// policy cache.
	TesterMode bool
	// StaticSupport omits the inquiry fact from the fact set.
	StaticSupport bool
	TraceEnabled  bool
	TraceFolder   string
}

// Service evaluates policies.
type Service struct {
	engine   ruleengine.Engine
	store    ruleengine.RuleStore
	resolver inquiry.Resolver
	auditor  Auditor
	metrics  *metrics.Metrics
	logger   *slog.Logger
	cfg      Config
	now      func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics collector for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRuleStore sets the store tester mode loads rule sets from.
func WithRuleStore(rs ruleengine.RuleStore) Option {
	return func(s *Service) {
		s.store = rs
	}
}

// WithResolver sets the directory resolver behind the inquiry fact.
func WithResolver(r inquiry.Resolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// WithAuditor sets the audit sink.
func WithAuditor(a Auditor) Option {
	return func(s *Service) {
		if a != nil {
			s.auditor = a
		}
	}
}

// WithConfig sets mode and tracing.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithClock sets the time source for durations and audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a policy service. Panics if the engine is nil.
func New(engine ruleengine.Engine, opts ...Option) *Service {
	if engine == nil {
		panic("service.New: rule engine is required")
	}
	s := &Service{
		engine:  engine,
		auditor: audit.Noop{},
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate runs the named policy against a fact built from req. If any
// directive ends invalid, the aggregated messages are returned as a
// validation error and no interchange.
func (s *Service) Evaluate(ctx context.Context, req models.ResolutionRequest) (*models.Interchange, error) {
	start := s.now()
	fact, err := s.evaluate(ctx, req)

	event := audit.Event{
		Type:       audit.EventResolutionEvaluated,
		PolicyName: req.PolicyName,
		Version:    req.Version,
		TesterMode: s.cfg.TesterMode,
		Subject:    req.ServiceName,
		Outcome:    outcomeOf(err),
	}
	if err != nil {
		event.Reason = err.Error()
	} else {
		event.AccessPoint = fact.BindingAccessPoint
	}
	s.finish(ctx, kindResolution, start, event)

	if err != nil {
		return nil, err
	}
	return fact, nil
}

// Resolve evaluates req and wraps the result for callers.
func (s *Service) Resolve(ctx context.Context, req models.ResolutionRequest) (*models.ResolutionResponse, error) {
	fact, err := s.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	version, _ := models.ParseVersion(req.Version)
	return &models.ResolutionResponse{
		PolicyName:  req.PolicyName,
		Version:     version.String(),
		Interchange: fact,
	}, nil
}

func (s *Service) evaluate(ctx context.Context, req models.ResolutionRequest) (*models.Interchange, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	version, err := models.ParseVersion(req.Version)
	if err != nil {
		return nil, err
	}

	fact := req.Interchange()
	facts := []ruleengine.Fact{fact}
	if !s.cfg.StaticSupport {
		facts = append(facts, inquiry.New(ctx, s.resolver, s.logger))
	}

	if err := s.run(ctx, req.PolicyName, version, facts); err != nil {
		return nil, err
	}

	if errs := fact.ValidationErrors(); len(errs) > 0 {
		msg := strings.Join(errs, "; ")
		s.logger.WarnContext(ctx, "policy directives invalid",
			"policy", req.PolicyName,
			"version", version.String(),
			"errors", msg,
		)
		return nil, dErrors.New(dErrors.CodeValidation, msg)
	}
	return fact, nil
}

// GetInterceptionPolicy evaluates the named policy against an activity step
// and returns the configuration rules assigned to it.
func (s *Service) GetInterceptionPolicy(ctx context.Context, activityName, stepName, policyName, version string) (*models.ActivityStepConfig, error) {
	start := s.now()
	cfg, err := s.interception(ctx, activityName, stepName, policyName, version)

	event := audit.Event{
		Type:       audit.EventInterceptionEvaluated,
		PolicyName: policyName,
		Version:    version,
		TesterMode: s.cfg.TesterMode,
		Subject:    activityName + "/" + stepName,
		Outcome:    outcomeOf(err),
	}
	if err != nil {
		event.Reason = err.Error()
	}
	s.finish(ctx, kindInterception, start, event)

	return cfg, err
}

func (s *Service) interception(ctx context.Context, activityName, stepName, policyName, version string) (*models.ActivityStepConfig, error) {
	if strings.TrimSpace(policyName) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "policy_name is required")
	}
	v, err := models.ParseVersion(version)
	if err != nil {
		return nil, err
	}

	cfg := models.NewActivityStepConfig(activityName, stepName)
	if err := s.run(ctx, policyName, v, []ruleengine.Fact{cfg}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run opens the policy for the configured mode, executes it and always
// closes the handle.
func (s *Service) run(ctx context.Context, name string, version models.Version, facts []ruleengine.Fact) error {
	policy, err := s.open(ctx, name, version)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := policy.Close(); cerr != nil {
			s.logger.WarnContext(ctx, "failed to close policy",
				"policy", name,
				"version", version.String(),
				"error", cerr,
			)
		}
	}()

	counter := &firedCounter{}
	var tracker *tracking.Interceptor
	if s.cfg.TraceEnabled {
		tracker = tracking.New()
		counter.next = tracker
	}

	execErr := policy.Execute(ctx, facts, counter)

	if s.metrics != nil {
		s.metrics.AddRulesFired(fmt.Sprintf("%s %s", name, version), counter.fired)
	}
	if tracker != nil {
		s.writeTrace(ctx, name, tracker)
	}
	if execErr != nil {
		return dErrors.Wrap(execErr, dErrors.CodeInternal,
			fmt.Sprintf("policy %s %s failed: %v", name, version, execErr))
	}
	return nil
}

func (s *Service) open(ctx context.Context, name string, version models.Version) (ruleengine.Policy, error) {
	if !s.cfg.TesterMode {
		return s.engine.Policy(ctx, name, version.Major, version.Minor)
	}

	if s.store == nil {
		return nil, dErrors.New(dErrors.CodeConfiguration, "tester mode requires a rule store")
	}
	rs, err := s.store.GetRuleSet(ctx, name, version.Major, version.Minor)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable,
			fmt.Sprintf("load rule set %s %s", name, version))
	}
	if rs == nil {
		s.logger.ErrorContext(ctx, "rule set not found in store",
			"policy", name,
			"version", version.String(),
		)
		return nil, dErrors.Wrap(ruleengine.ErrRuleSetNotFound, dErrors.CodeConfiguration,
			fmt.Sprintf("rule set %s %s not found", name, version))
	}
	return s.engine.Tester(ctx, rs)
}

func (s *Service) writeTrace(ctx context.Context, policyName string, tracker *tracking.Interceptor) {
	if s.cfg.TraceFolder == "" {
		s.logger.DebugContext(ctx, "policy trace recorded",
			"policy", policyName,
			"events", len(tracker.Events()),
		)
		return
	}
	path, err := tracker.WriteFile(s.cfg.TraceFolder, policyName)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to write policy trace",
			"policy", policyName,
			"folder", s.cfg.TraceFolder,
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.IncrementTraceWriteFailure()
		}
		return
	}
	s.logger.DebugContext(ctx, "policy trace written", "path", path)
}

func (s *Service) finish(ctx context.Context, kind string, start time.Time, event audit.Event) {
	elapsed := s.now().Sub(start)
	event.DurationMS = elapsed.Milliseconds()
	event.RequestID = request.GetRequestID(ctx)

	if s.metrics != nil {
		s.metrics.ObserveEvaluation(kind, string(event.Outcome), elapsed)
	}

	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit policy audit event",
			"policy", event.PolicyName,
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.IncrementAuditFailure()
		}
	}
}

func outcomeOf(err error) audit.Outcome {
	switch {
	case err == nil:
		return audit.OutcomeResolved
	case dErrors.HasCode(err, dErrors.CodeValidation):
		return audit.OutcomeInvalid
	default:
		return audit.OutcomeFailed
	}
}

// firedCounter counts fired rules and forwards to an optional tracker.
type firedCounter struct {
	next  ruleengine.Interceptor
	fired int
}

func (c *firedCounter) RuleEvaluated(ruleSet, rule string, matched bool) {
	if c.next != nil {
		c.next.RuleEvaluated(ruleSet, rule, matched)
	}
}

func (c *firedCounter) RuleFired(ruleSet, rule string) {
	c.fired++
	if c.next != nil {
		c.next.RuleFired(ruleSet, rule)
	}
}

func (c *firedCounter) FactAssigned(ruleSet, rule, path string, value any) {
	if c.next != nil {
		c.next.FactAssigned(ruleSet, rule, path, value)
	}
}
