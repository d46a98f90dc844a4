// Package exprengine implements the rule engine capability with
// expr-lang expressions: rule conditions are boolean expressions and
// actions assign expression results to fact paths.
package exprengine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"esbresolver/internal/policy/ruleengine"
	dErrors "esbresolver/pkg/domain-errors"
)

type versionKey struct {
	name  string
	major int
	minor int
}

// Engine holds the production policy cache.
type Engine struct {
	mu       sync.RWMutex
	policies map[versionKey]*compiledSet
	logger   *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine with an empty policy cache.
func New(opts ...Option) *Engine {
	e := &Engine{
		policies: make(map[versionKey]*compiledSet),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load compiles rule sets into the policy cache, replacing any with the same
// name and version. Nothing is stored if one fails to compile.
func (e *Engine) Load(sets ...*ruleengine.RuleSet) error {
	compiled := make([]*compiledSet, 0, len(sets))
	for _, rs := range sets {
		cs, err := compile(rs)
		if err != nil {
			return err
		}
		compiled = append(compiled, cs)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, cs := range compiled {
		e.policies[versionKey{cs.name, cs.major, cs.minor}] = cs
	}
	return nil
}

// LoadFile reads a JSON array of rule sets and loads it.
func (e *Engine) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeConfiguration, fmt.Sprintf("read rules file %q", path))
	}
	var sets []*ruleengine.RuleSet
	if err := json.Unmarshal(raw, &sets); err != nil {
		return dErrors.Wrap(err, dErrors.CodeConfiguration, fmt.Sprintf("parse rules file %q", path))
	}
	if err := e.Load(sets...); err != nil {
		return dErrors.Wrap(err, dErrors.CodeConfiguration, fmt.Sprintf("load rules file %q", path))
	}
	e.logger.Info("rule sets loaded", "path", path, "count", len(sets))
	return nil
}

// Policy opens a cached policy.
func (e *Engine) Policy(_ context.Context, name string, major, minor int) (ruleengine.Policy, error) {
	e.mu.RLock()
	cs, ok := e.policies[versionKey{name, major, minor}]
	e.mu.RUnlock()
	if !ok {
		return nil, dErrors.Wrap(ruleengine.ErrRuleSetNotFound, dErrors.CodeNotFound,
			fmt.Sprintf("policy %s %d.%d not found", name, major, minor))
	}
	return newPolicy(cs), nil
}

// Tester compiles rs for a one-off execution outside the policy cache.
func (e *Engine) Tester(_ context.Context, rs *ruleengine.RuleSet) (ruleengine.Policy, error) {
	cs, err := compile(rs)
	if err != nil {
		return nil, err
	}
	return newPolicy(cs), nil
}

// Policies lists the cached policy identifiers in sorted order.
func (e *Engine) Policies() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, 0, len(e.policies))
	for _, cs := range e.policies {
		ids = append(ids, cs.id)
	}
	sort.Strings(ids)
	return ids
}

var _ ruleengine.Engine = (*Engine)(nil)
